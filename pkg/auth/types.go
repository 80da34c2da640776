// Package auth resolves request credentials into a normalized AuthContext.
//
// Token verification is delegated to the external auth provider; this package
// never inspects token contents itself beyond handing them to a Provider.
// An absent or unverifiable token is not an error: it yields the guest context.
package auth

import "context"

// Role is the coarse-grained role carried in the provider's user metadata
type Role string

const (
	// RoleGuest is synthesized locally for unauthenticated callers, never persisted
	RoleGuest Role = "guest"
	// RoleUser is the default for any authenticated account
	RoleUser Role = "user"
	// RoleAdmin may mutate any resource regardless of ownership
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

// AuthContext is the normalized result of resolving a request's credentials
type AuthContext struct {
	// UserID is the provider's stable subject identifier, empty for guests
	UserID string
	// Role is guest, user, or admin
	Role Role
	// IsAuthenticated is false exactly when the context is the guest tuple
	IsAuthenticated bool
}

// Guest returns the anonymous context used for callers without valid credentials
func Guest() AuthContext {
	return AuthContext{UserID: "", Role: RoleGuest, IsAuthenticated: false}
}

// Identity is a verified user as reported by the auth provider
type Identity struct {
	// Subject is the provider's stable user identifier (a UUID for hosted providers)
	Subject string
	// Role from the user's metadata; empty means unset
	Role Role
}

// Provider verifies bearer tokens against the external auth provider
type Provider interface {
	// VerifyToken exchanges a bearer token for the identity it belongs to.
	// Implementations return an error for invalid, expired, or unknown tokens.
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
