package ports_test

import (
	"testing"

	mocks "github.com/tubebridge/tubebridge-api/internal/mocks/auth"
	"github.com/tubebridge/tubebridge-api/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthProvider = (*mocks.MockAuthProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.ProfileStore = (*mocks.MemoryProfileStore)(nil)
	var _ ports.PendingAuthStore = (*mocks.MemoryPendingAuthStore)(nil)
	var _ ports.RolePolicy = (mocks.FixedRolePolicy{})
}
