package services

import (
	"testing"

	"github.com/openmuse/openmuse-backend/internal/types"
)

func TestDisplayNameOf(t *testing.T) {
	tests := []struct {
		name string
		user *types.User
		want string
	}{
		{"display name wins", &types.User{DisplayName: "Alice", Username: "alice99"}, "Alice"},
		{"username fallback", &types.User{Username: "alice99"}, "alice99"},
		{"nothing set", &types.User{}, ""},
		{"nil user", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := displayNameOf(tc.user); got != tc.want {
				t.Fatalf("displayNameOf = %q, want %q", got, tc.want)
			}
		})
	}
}
