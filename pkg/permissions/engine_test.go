package permissions

import (
	"testing"

	"github.com/showbase/showbase/pkg/auth"
)

func guestCtx() auth.AuthContext {
	return auth.Guest()
}

func userCtx(id string) auth.AuthContext {
	return auth.AuthContext{UserID: id, Role: auth.RoleUser, IsAuthenticated: true}
}

func adminCtx(id string) auth.AuthContext {
	return auth.AuthContext{UserID: id, Role: auth.RoleAdmin, IsAuthenticated: true}
}

func TestCheckPermission_Guest(t *testing.T) {
	tests := []struct {
		action Action
		want   bool
	}{
		{ActionRead, true},
		{ActionCreate, false},
		{ActionUpdate, false},
		{ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := CheckPermission(guestCtx(), tt.action, "someone"); got != tt.want {
				t.Errorf("CheckPermission(guest, %s) = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestCheckPermission_Admin(t *testing.T) {
	// Admins bypass ownership entirely, including rows owned by others
	// and rows with no known owner
	for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
		for _, owner := range []string{"", "somebody-else"} {
			if !CheckPermission(adminCtx("admin-1"), action, owner) {
				t.Errorf("CheckPermission(admin, %s, %q) = false, want true", action, owner)
			}
		}
	}
}

func TestCheckPermission_User(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		ownerID string
		want    bool
	}{
		{"read anything", ActionRead, "somebody-else", true},
		{"create", ActionCreate, "", true},
		{"update own", ActionUpdate, "user-1", true},
		{"update other's", ActionUpdate, "user-2", false},
		{"delete own", ActionDelete, "user-1", true},
		{"delete other's", ActionDelete, "user-2", false},
		{"update unknown owner", ActionUpdate, "", false},
		{"delete unknown owner", ActionDelete, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPermission(userCtx("user-1"), tt.action, tt.ownerID); got != tt.want {
				t.Errorf("CheckPermission(user, %s, %q) = %v, want %v", tt.action, tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestCheckPermission_UnknownAction(t *testing.T) {
	if CheckPermission(userCtx("user-1"), Action("publish"), "user-1") {
		t.Error("unknown action should be denied for users")
	}
	if !CheckPermission(adminCtx("admin-1"), Action("publish"), "") {
		t.Error("admins are allowed everything, including unknown actions")
	}
}
