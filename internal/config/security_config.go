// config/security_config.go
package config

import "carrental-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointPolicy is the authentication level of a route and the roles that
// may call it. Per-row scoping happens further down, in the services.
type EndpointPolicy struct {
	Level SecurityLevel
	Roles []domain.Role
}

var everyRole = []domain.Role{domain.RoleSuperAdmin, domain.RoleCompany, domain.RoleAgent, domain.RoleUser}

// EndpointSecurityConfig maps route names to their policy
var EndpointSecurityConfig = map[string]EndpointPolicy{
	"health": {Level: SecurityPublic},

	"lists":                {Level: SecurityAccess, Roles: everyRole},
	"bookings.get":         {Level: SecurityAccess, Roles: everyRole},
	"bookings.invoice":     {Level: SecurityAccess, Roles: everyRole},
	"bookings.invoice_pdf": {Level: SecurityAccess, Roles: everyRole},
	"quote":                {Level: SecurityAccess, Roles: everyRole},
	"notifications.read":   {Level: SecurityAccess, Roles: everyRole},

	"reports.revenue": {Level: SecurityAccess, Roles: []domain.Role{domain.RoleSuperAdmin, domain.RoleCompany}},
}

// GetEndpointPolicy returns the policy for a route. Unknown routes require a
// token and admit no role.
func GetEndpointPolicy(route string) EndpointPolicy {
	if policy, exists := EndpointSecurityConfig[route]; exists {
		return policy
	}
	return EndpointPolicy{Level: SecurityAccess}
}

func (p EndpointPolicy) Allows(role domain.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
