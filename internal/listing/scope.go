package listing

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
)

// Scope is the caller as seen by the list endpoints. CompanyID is set for
// company accounts and for agents, SubjectID is the caller's own id.
type Scope struct {
	Role      domain.Role
	SubjectID primitive.ObjectID
	CompanyID primitive.ObjectID
}
