package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachingProvider wraps a Provider with an expirable LRU keyed by token hash,
// so hot tokens cost one provider round-trip per TTL window instead of one
// per request. Only successful verifications are cached; the TTL must stay
// well under the provider's token lifetime so revocation lag is bounded.
type CachingProvider struct {
	inner Provider
	cache *expirable.LRU[string, Identity]
}

// NewCachingProvider wraps inner with a cache of up to size entries expiring
// after ttl. Tokens are hashed before use as cache keys; plaintext tokens are
// never retained.
func NewCachingProvider(inner Provider, size int, ttl time.Duration) *CachingProvider {
	return &CachingProvider{
		inner: inner,
		cache: expirable.NewLRU[string, Identity](size, nil, ttl),
	}
}

// VerifyToken implements Provider
func (p *CachingProvider) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	key := hashToken(token)

	if identity, ok := p.cache.Get(key); ok {
		return &identity, nil
	}

	identity, err := p.inner.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, *identity)
	return identity, nil
}

// Purge drops all cached verifications
func (p *CachingProvider) Purge() {
	p.cache.Purge()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
