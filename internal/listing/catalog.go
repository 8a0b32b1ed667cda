package listing

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/query"
)

// Entity is one listable collection: its query configuration plus the rule
// restricting rows to what a caller may see.
type Entity struct {
	Name string
	Spec query.QuerySpec
	// Scopes maps each permitted role to the extra filter for that role.
	// A nil function means the role sees every row.
	Scopes map[domain.Role]func(Scope) bson.D
	// Decorate, when set, enriches each page row after the query ran.
	Decorate func(row bson.M)
}

type Catalog struct {
	entities map[string]Entity
}

func NewCatalog(entities ...Entity) *Catalog {
	c := &Catalog{entities: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		c.entities[e.Name] = e
	}
	return c
}

// Names lists the registered entities in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entities))
	for name := range c.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the entity's spec with the caller's scope folded into the
// base filter.
func (c *Catalog) Resolve(name string, scope Scope) (Entity, query.QuerySpec, error) {
	entity, ok := c.entities[name]
	if !ok {
		return Entity{}, query.QuerySpec{}, domain.NotFound("list " + name)
	}
	scoped, allowed := entity.Scopes[scope.Role]
	if !allowed {
		return Entity{}, query.QuerySpec{}, domain.Forbidden("role " + string(scope.Role) + " may not list " + name)
	}

	spec := entity.Spec
	spec.Match = append(bson.D{}, entity.Spec.Match...)
	if scoped != nil {
		spec.Match = append(spec.Match, scoped(scope)...)
	}
	return entity, spec, nil
}

func bySubject(field string) func(Scope) bson.D {
	return func(s Scope) bson.D { return bson.D{{Key: field, Value: s.SubjectID}} }
}

func byCompany(field string) func(Scope) bson.D {
	return func(s Scope) bson.D { return bson.D{{Key: field, Value: s.CompanyID}} }
}
