// Package permissions implements the role/ownership decision table applied
// before every mutating catalog operation.
//
// The engine is pure: it depends only on the resolved AuthContext and does no
// I/O. Handlers fetch the current owner of a row before asking about update
// or delete, so the per-row ownership rule always sees fresh data.
package permissions

import (
	"github.com/showbase/showbase/pkg/auth"
)

// Action is a CRUD action subject to permission checking
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CheckPermission evaluates the decision table in order:
//
//  1. guests may only read
//  2. admins may do anything
//  3. anyone may read
//  4. any authenticated user may create
//  5. update/delete require a known owner matching the caller
//  6. everything else is denied
//
// ownerID is the creator id of the resource under mutation; pass the empty
// string when no owner is known (which denies update/delete for non-admins).
func CheckPermission(ctx auth.AuthContext, action Action, ownerID string) bool {
	if ctx.Role == auth.RoleGuest {
		return action == ActionRead
	}

	if ctx.Role == auth.RoleAdmin {
		return true
	}

	if action == ActionRead {
		return true
	}

	if action == ActionCreate {
		return true
	}

	if (action == ActionUpdate || action == ActionDelete) && ownerID != "" {
		return ctx.UserID == ownerID
	}

	return false
}
