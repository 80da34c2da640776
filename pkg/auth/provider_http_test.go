package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_VerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"3f6f8b2c-0000-4000-8000-000000000001","user_metadata":{"role":"admin"}}`))
		case "Bearer no-metadata":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"3f6f8b2c-0000-4000-8000-000000000002","user_metadata":{}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid JWT"}`))
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "anon-key", nil)

	t.Run("valid token", func(t *testing.T) {
		identity, err := p.VerifyToken(context.Background(), "good-token")
		require.NoError(t, err)
		assert.Equal(t, "3f6f8b2c-0000-4000-8000-000000000001", identity.Subject)
		assert.Equal(t, RoleAdmin, identity.Role)
	})

	t.Run("no role metadata", func(t *testing.T) {
		identity, err := p.VerifyToken(context.Background(), "no-metadata")
		require.NoError(t, err)
		assert.Equal(t, Role(""), identity.Role)
	})

	t.Run("rejected token", func(t *testing.T) {
		identity, err := p.VerifyToken(context.Background(), "bad-token")
		assert.Error(t, err)
		assert.Nil(t, identity)
	})
}

func TestHTTPProvider_EmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "", nil)
	_, err := p.VerifyToken(context.Background(), "t")
	assert.Error(t, err)
}

func TestHTTPProvider_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewHTTPProvider(srv.URL, "", nil)
	_, err := p.VerifyToken(context.Background(), "t")
	assert.Error(t, err)
}

func TestHTTPProvider_TrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"u1"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", "", nil)
	_, err := p.VerifyToken(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/user", gotPath)
}
