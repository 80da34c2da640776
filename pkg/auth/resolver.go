package auth

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Resolver turns an incoming request into an AuthContext
type Resolver struct {
	provider Provider
	logger   *logrus.Logger
}

// NewResolver creates a resolver backed by the given provider
func NewResolver(provider Provider, logger *logrus.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger,
	}
}

// Resolve produces the AuthContext for a request.
//
// A missing or malformed Authorization header, a failed verification, or a
// provider error all resolve to the guest context. Resolve never fails: the
// anonymous state is valid, and downstream permission checks decide what a
// guest may do.
func (r *Resolver) Resolve(req *http.Request) AuthContext {
	token, ok := ExtractBearerToken(req)
	if !ok {
		return Guest()
	}

	identity, err := r.provider.VerifyToken(req.Context(), token)
	if err != nil || identity == nil || identity.Subject == "" {
		if err != nil && r.logger != nil {
			r.logger.WithError(err).Debug("token verification failed, treating caller as guest")
		}
		return Guest()
	}

	role := identity.Role
	if !role.Valid() || role == RoleGuest {
		role = RoleUser
	}

	return AuthContext{
		UserID:          identity.Subject,
		Role:            role,
		IsAuthenticated: true,
	}
}

// ExtractBearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. ok is false when the header is absent or not in bearer form.
func ExtractBearerToken(req *http.Request) (token string, ok bool) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	// Tolerate extra whitespace around the token; a whitespace-only token is
	// treated as absent rather than handed to the provider
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
