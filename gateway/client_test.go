package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitgrid/habitkit/core/kv"
	"github.com/habitgrid/habitkit/core/session"
	"github.com/habitgrid/habitkit/gateway"
)

func newTestClient(t *testing.T, handler http.Handler) (*gateway.Client, *kv.Memory) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	storage := kv.NewMemory()
	client, err := gateway.New(gateway.Config{BaseURL: server.URL + "/api"}, storage)
	require.NoError(t, err)
	return client, storage
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires storage", func(t *testing.T) {
		t.Parallel()

		_, err := gateway.New(gateway.Config{BaseURL: "http://localhost:8080/api"}, nil)
		require.ErrorIs(t, err, gateway.ErrMissingStorage)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := gateway.New(gateway.Config{}, kv.NewMemory())
		require.ErrorIs(t, err, gateway.ErrInvalidConfig)
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		t.Parallel()

		_, err := gateway.New(gateway.Config{BaseURL: "ftp://example.com/api"}, kv.NewMemory())
		require.ErrorIs(t, err, gateway.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "scheme")
	})
}

func TestClient_BearerToken(t *testing.T) {
	t.Parallel()

	t.Run("read fresh from storage on every call", func(t *testing.T) {
		t.Parallel()

		var authHeaders []string
		client, storage := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[]`))
		}))
		ctx := context.Background()

		_, err := client.ListHabits(ctx)
		require.NoError(t, err)

		require.NoError(t, storage.Set(ctx, session.TokenKey, "t1"))
		_, err = client.ListHabits(ctx)
		require.NoError(t, err)

		require.NoError(t, storage.Set(ctx, session.TokenKey, "t2"))
		_, err = client.ListHabits(ctx)
		require.NoError(t, err)

		require.NoError(t, storage.Delete(ctx, session.TokenKey))
		_, err = client.ListHabits(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"", "Bearer t1", "Bearer t2", ""}, authHeaders)
	})
}

func TestClient_RequestHeaders(t *testing.T) {
	t.Parallel()

	var gotRequestID, gotUserAgent, gotAccept string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListNotifications(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err, "X-Request-ID should be a UUID")
	assert.Contains(t, gotUserAgent, "habitkit/")
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Parallel()

	t.Run("server message is surfaced verbatim", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		}))

		_, err := client.Login(context.Background(), gateway.LoginRequest{Username: "alice", Password: "wrong"})
		require.Error(t, err)

		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("non-JSON error body falls back to status", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))

		_, err := client.ListHabits(context.Background())

		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("connection failure wraps ErrRequestFailed", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		client, err := gateway.New(gateway.Config{BaseURL: "http://127.0.0.1:1/api"}, storage)
		require.NoError(t, err)

		_, err = client.ListHabits(context.Background())
		require.ErrorIs(t, err, gateway.ErrRequestFailed)
	})
}

func TestClient_Unauthorized(t *testing.T) {
	t.Parallel()

	t.Run("fires the handler and returns the error", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
		}))

		var evicted bool
		client.OnUnauthorized(func(ctx context.Context) {
			evicted = true
		})

		_, err := client.ListHabits(context.Background())

		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.Unauthorized())
		assert.True(t, evicted, "unauthorized handler should fire on 401")
	})

	t.Run("evicts the session store when wired to Invalidate", func(t *testing.T) {
		t.Parallel()

		client, storage := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
		}))
		ctx := context.Background()

		store, err := session.New(storage, client.SessionAuthenticator())
		require.NoError(t, err)
		client.OnUnauthorized(store.Invalidate)

		require.NoError(t, storage.Set(ctx, session.TokenKey, "stale"))
		require.NoError(t, storage.Set(ctx, session.UserKey, `{"id":1,"username":"alice"}`))
		require.True(t, store.Bootstrap(ctx).IsAuthenticated())

		_, err = client.ListHabits(ctx)
		require.Error(t, err)

		assert.Equal(t, session.StatusAnonymous, store.Current().Status)
		_, err = storage.Get(ctx, session.TokenKey)
		require.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("no handler registered is fine", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.ListHabits(context.Background())
		require.Error(t, err)
	})
}
