package authroles

import (
	"testing"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

func TestStaticRolePolicy_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		policy    StaticRolePolicy
		requested domainauth.Role
		email     string
		expected  domainauth.Role
	}{
		{
			name:      "requested role honored",
			requested: domainauth.RoleContentManager,
			expected:  domainauth.RoleContentManager,
		},
		{
			name:      "empty request defaults to admin",
			requested: "",
			expected:  domainauth.RoleAdmin,
		},
		{
			name:      "unknown request defaults to admin",
			requested: "superuser",
			expected:  domainauth.RoleAdmin,
		},
		{
			name:      "allowlisted email keeps admin",
			policy:    StaticRolePolicy{AdminEmails: []string{"boss@example.com"}},
			requested: domainauth.RoleAdmin,
			email:     "boss@example.com",
			expected:  domainauth.RoleAdmin,
		},
		{
			name:      "non-allowlisted email downgraded",
			policy:    StaticRolePolicy{AdminEmails: []string{"boss@example.com"}},
			requested: domainauth.RoleAdmin,
			email:     "guest@example.com",
			expected:  domainauth.RoleContentManager,
		},
		{
			name:      "allowlist does not affect content manager",
			policy:    StaticRolePolicy{AdminEmails: []string{"boss@example.com"}},
			requested: domainauth.RoleContentManager,
			email:     "guest@example.com",
			expected:  domainauth.RoleContentManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Resolve(tt.requested, domainauth.Identity{Email: tt.email})
			if got != tt.expected {
				t.Errorf("expected role %s, got %s", tt.expected, got)
			}
		})
	}
}
