package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRights(t *testing.T) {
	assert.True(t, HasRights(RoleAdmin, RightGetUsers))
	assert.True(t, HasRights(RoleAdmin, RightGetUsers, RightManageUsers))
	assert.True(t, HasRights(RoleUser), "no required rights always passes")

	assert.False(t, HasRights(RoleUser, RightGetUsers))
	assert.False(t, HasRights(RoleUser, RightManageUsers))
	assert.False(t, HasRights(Role("superuser"), RightGetUsers), "unknown role holds nothing")
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(Role("root")))
	assert.False(t, ValidRole(Role("")))
}
