package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{" Editor ", RoleEditor, true},
		{"VIEWER", RoleViewer, true},
		{"owner", "", false},
		{"", "", false},
		{"superadmin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name string
		have Role
		need Role
		want bool
	}{
		{"admin clears admin", RoleAdmin, RoleAdmin, true},
		{"admin clears editor", RoleAdmin, RoleEditor, true},
		{"editor clears viewer", RoleEditor, RoleViewer, true},
		{"editor denied admin", RoleEditor, RoleAdmin, false},
		{"viewer denied editor", RoleViewer, RoleEditor, false},
		{"same rank passes", RoleViewer, RoleViewer, true},
		{"unknown caller denied", Role("root"), RoleViewer, false},
		{"unknown requirement denied", RoleAdmin, Role("owner"), false},
		{"zero value denied", Role(""), RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.have, tt.need))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleViewer))
	assert.True(t, Valid(RoleEditor))
	assert.True(t, Valid(RoleAdmin))
	assert.False(t, Valid(Role("OWNER")))
	assert.False(t, Valid(Role("")))
}
