package permissions

import (
	"net/http"

	"github.com/showbase/showbase/pkg/auth"
)

// Denial is a rejected guard decision, carrying the HTTP status to return.
// A nil *Denial means "proceed".
type Denial struct {
	Status  int
	Message string
}

// RequireAuth denies with 401 unless the caller is authenticated
func RequireAuth(ctx auth.AuthContext) *Denial {
	if !ctx.IsAuthenticated {
		return &Denial{Status: http.StatusUnauthorized, Message: "Authentication required"}
	}
	return nil
}

// RequireRole denies with 401 for unauthenticated callers and 403 for
// authenticated callers whose role is not in allowed
func RequireRole(ctx auth.AuthContext, allowed ...auth.Role) *Denial {
	if !ctx.IsAuthenticated {
		return &Denial{Status: http.StatusUnauthorized, Message: "Authentication required"}
	}

	for _, role := range allowed {
		if ctx.Role == role {
			return nil
		}
	}

	return &Denial{Status: http.StatusForbidden, Message: "Insufficient permissions"}
}

// RequirePermission runs the decision table and maps a deny to an HTTP status.
// 401 is reserved for callers who never logged in attempting a non-read
// action; everything else denied gets 403.
func RequirePermission(ctx auth.AuthContext, action Action, ownerID string) *Denial {
	if CheckPermission(ctx, action, ownerID) {
		return nil
	}

	if !ctx.IsAuthenticated && action != ActionRead {
		return &Denial{Status: http.StatusUnauthorized, Message: "Authentication required"}
	}

	return &Denial{Status: http.StatusForbidden, Message: "Insufficient permissions"}
}
