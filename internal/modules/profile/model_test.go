package profile

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"customer", RoleCustomer},
		{"driver", RoleDriver},
		{"admin", RoleAdmin},
		{"", RoleCustomer},
		{"superuser", RoleCustomer},
		{"DRIVER", RoleCustomer}, // roles are stored lowercase; anything else is unassigned
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
