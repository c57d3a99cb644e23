package middleware

import (
	"testing"

	"paperpen/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoleMissingProfileIsCustomer(t *testing.T) {
	role := ResolveRole(models.User{}, false)
	assert.Equal(t, models.RoleCustomer, role)
}

func TestResolveRoleEmptyRoleIsCustomer(t *testing.T) {
	role := ResolveRole(models.User{UserID: "u1"}, true)
	assert.Equal(t, models.RoleCustomer, role)
}

func TestResolveRoleKeepsStoredRole(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, ResolveRole(models.User{Role: models.RoleAdmin}, true))
	assert.Equal(t, models.RoleCustomer, ResolveRole(models.User{Role: models.RoleCustomer}, true))
}

func TestResolveRoleNeverPromotesOnMissingProfile(t *testing.T) {
	// even a stale admin role on a record the lookup failed to find
	// must not grant admin
	role := ResolveRole(models.User{Role: models.RoleAdmin}, false)
	assert.Equal(t, models.RoleCustomer, role)
}
