package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM ", "alice@example.com"},
		{"\tBOB@example.com\n", "bob@example.com"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in), "input %q", tt.in)
	}
}

func TestRoleFromFlags(t *testing.T) {
	role, ok := RoleFromFlags(true, false)
	assert.True(t, ok)
	assert.Equal(t, RoleParent, role)

	role, ok = RoleFromFlags(false, true)
	assert.True(t, ok)
	assert.Equal(t, RolePlayer, role)

	// Parent wins when both flags are set
	role, ok = RoleFromFlags(true, true)
	assert.True(t, ok)
	assert.Equal(t, RoleParent, role)

	_, ok = RoleFromFlags(false, false)
	assert.False(t, ok)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleParent.Valid())
	assert.True(t, RolePlayer.Valid())
	assert.False(t, Role("coach").Valid())
	assert.False(t, Role("").Valid())
}
