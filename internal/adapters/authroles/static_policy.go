package authroles

import (
	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

// StaticRolePolicy grants the role the user selected on the login screen,
// falling back to admin when the request is empty or unknown. An optional
// allowlist restricts which emails may operate as admin.
type StaticRolePolicy struct {
	// AdminEmails, when non-empty, limits the admin role to the listed
	// addresses; everyone else is downgraded to content-manager.
	AdminEmails []string
}

func (p StaticRolePolicy) Resolve(requested domainauth.Role, identity domainauth.Identity) domainauth.Role {
	role := requested
	if !role.Valid() {
		role = domainauth.RoleAdmin
	}
	if role == domainauth.RoleAdmin && len(p.AdminEmails) > 0 {
		for _, email := range p.AdminEmails {
			if email == identity.Email {
				return domainauth.RoleAdmin
			}
		}
		return domainauth.RoleContentManager
	}
	return role
}
