package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/habitgrid/habitkit/core/kv"
	"github.com/habitgrid/habitkit/core/session"
)

// mockAuthenticator implements session.Authenticator for testing.
type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(ctx context.Context, creds session.Credentials) (session.AuthResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(session.AuthResult), args.Error(1)
}

func (m *mockAuthenticator) Register(ctx context.Context, params session.RegisterParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func newStore(t *testing.T, storage kv.Store, auth session.Authenticator) *session.Store {
	t.Helper()
	store, err := session.New(storage, auth)
	require.NoError(t, err)
	return store
}

func aliceResult(token string) session.AuthResult {
	return session.AuthResult{
		Token:    token,
		ID:       1,
		Username: "alice",
		Email:    "a@x.com",
		Role:     "USER",
	}
}

func seedSession(t *testing.T, storage kv.Store, token string, identity session.Identity) {
	t.Helper()
	ctx := context.Background()
	raw, err := json.Marshal(identity)
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, session.TokenKey, token))
	require.NoError(t, storage.Set(ctx, session.UserKey, string(raw)))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires storage", func(t *testing.T) {
		t.Parallel()

		_, err := session.New(nil, &mockAuthenticator{})
		require.ErrorIs(t, err, session.ErrMissingStorage)
	})

	t.Run("requires authenticator", func(t *testing.T) {
		t.Parallel()

		_, err := session.New(kv.NewMemory(), nil)
		require.ErrorIs(t, err, session.ErrMissingAuthenticator)
	})

	t.Run("starts in loading state", func(t *testing.T) {
		t.Parallel()

		store := newStore(t, kv.NewMemory(), &mockAuthenticator{})

		current := store.Current()
		assert.True(t, current.IsLoading())
		assert.False(t, current.IsAuthenticated())
	})
}

func TestStore_Bootstrap(t *testing.T) {
	t.Parallel()

	t.Run("empty storage yields anonymous", func(t *testing.T) {
		t.Parallel()

		store := newStore(t, kv.NewMemory(), &mockAuthenticator{})

		current := store.Bootstrap(context.Background())

		assert.Equal(t, session.StatusAnonymous, current.Status)
		assert.Nil(t, current.User)
		assert.Empty(t, current.Token)
		assert.False(t, store.Current().IsLoading())
	})

	t.Run("valid pair yields authenticated with stored identity", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		identity := session.Identity{
			ID:        1,
			Username:  "alice",
			Email:     "a@x.com",
			Role:      "USER",
			CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		}
		seedSession(t, storage, "t1", identity)

		store := newStore(t, storage, &mockAuthenticator{})
		current := store.Bootstrap(context.Background())

		require.True(t, current.IsAuthenticated())
		assert.Equal(t, "t1", current.Token)
		require.NotNil(t, current.User)
		assert.Equal(t, identity, *current.User)
	})

	t.Run("token without user yields anonymous", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		require.NoError(t, storage.Set(context.Background(), session.TokenKey, "t1"))

		store := newStore(t, storage, &mockAuthenticator{})
		current := store.Bootstrap(context.Background())

		assert.Equal(t, session.StatusAnonymous, current.Status)
		assert.Nil(t, current.User)
		assert.Empty(t, current.Token)
	})

	t.Run("user without token yields anonymous", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		require.NoError(t, storage.Set(context.Background(), session.UserKey, `{"id":1,"username":"alice"}`))

		store := newStore(t, storage, &mockAuthenticator{})
		current := store.Bootstrap(context.Background())

		assert.Equal(t, session.StatusAnonymous, current.Status)
		assert.Nil(t, current.User)
	})

	t.Run("undecodable user yields anonymous", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		ctx := context.Background()
		require.NoError(t, storage.Set(ctx, session.TokenKey, "t1"))
		require.NoError(t, storage.Set(ctx, session.UserKey, "{not json"))

		store := newStore(t, storage, &mockAuthenticator{})
		current := store.Bootstrap(ctx)

		assert.Equal(t, session.StatusAnonymous, current.Status)
	})
}

func TestStore_Login(t *testing.T) {
	t.Parallel()

	t.Run("success updates memory and storage", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		auth := &mockAuthenticator{}
		auth.On("Login", mock.Anything, session.Credentials{Username: "alice", Password: "right"}).
			Return(aliceResult("t2"), nil)

		store := newStore(t, storage, auth)
		store.Bootstrap(context.Background())

		current, err := store.Login(context.Background(), "alice", "right")
		require.NoError(t, err)

		require.True(t, current.IsAuthenticated())
		assert.Equal(t, "t2", current.Token)
		require.NotNil(t, current.User)
		assert.Equal(t, "alice", current.User.Username)
		assert.Equal(t, "a@x.com", current.User.Email)
		assert.Equal(t, "USER", current.User.Role)

		storedToken, err := storage.Get(context.Background(), session.TokenKey)
		require.NoError(t, err)
		assert.Equal(t, "t2", storedToken)

		rawUser, err := storage.Get(context.Background(), session.UserKey)
		require.NoError(t, err)
		var persisted session.Identity
		require.NoError(t, json.Unmarshal([]byte(rawUser), &persisted))
		assert.Equal(t, *current.User, persisted)

		auth.AssertExpectations(t)
	})

	t.Run("rejection leaves session unchanged and surfaces the message", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		auth := &mockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything).
			Return(session.AuthResult{}, errors.New("Invalid credentials"))

		store := newStore(t, storage, auth)
		store.Bootstrap(context.Background())

		current, err := store.Login(context.Background(), "alice", "wrong")
		require.EqualError(t, err, "Invalid credentials")
		assert.Equal(t, session.StatusAnonymous, current.Status)

		_, err = storage.Get(context.Background(), session.TokenKey)
		require.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("persist failure keeps in-memory session", func(t *testing.T) {
		t.Parallel()

		storage := &failingStore{Memory: kv.NewMemory()}
		auth := &mockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything).Return(aliceResult("t2"), nil)

		store := newStore(t, storage, auth)
		store.Bootstrap(context.Background())

		current, err := store.Login(context.Background(), "alice", "right")
		require.ErrorIs(t, err, session.ErrPersistSession)
		assert.True(t, current.IsAuthenticated())
		assert.True(t, store.Current().IsAuthenticated())
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		auth := newBlockingAuthenticator()
		store := newStore(t, storage, auth)
		store.Bootstrap(context.Background())

		firstDone := make(chan loginOutcome, 1)
		go func() {
			current, err := store.Login(context.Background(), "alice", "first")
			firstDone <- loginOutcome{current, err}
		}()
		firstReply := <-auth.calls

		secondDone := make(chan loginOutcome, 1)
		go func() {
			current, err := store.Login(context.Background(), "alice", "second")
			secondDone <- loginOutcome{current, err}
		}()
		secondReply := <-auth.calls

		// Newer attempt resolves first and wins.
		secondReply <- aliceResult("t-new")
		second := <-secondDone
		require.NoError(t, second.err)
		assert.Equal(t, "t-new", second.session.Token)

		// Older attempt resolves late and must be discarded.
		firstReply <- aliceResult("t-old")
		first := <-firstDone
		require.ErrorIs(t, first.err, session.ErrLoginSuperseded)
		assert.Equal(t, "t-new", first.session.Token)

		assert.Equal(t, "t-new", store.Current().Token)
		storedToken, err := storage.Get(context.Background(), session.TokenKey)
		require.NoError(t, err)
		assert.Equal(t, "t-new", storedToken)
	})
}

func TestStore_Register(t *testing.T) {
	t.Parallel()

	t.Run("success never mutates session", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Register", mock.Anything, mock.Anything).Return(nil)

		store := newStore(t, kv.NewMemory(), auth)
		store.Bootstrap(context.Background())

		err := store.Register(context.Background(), session.RegisterParams{
			Username: "bob",
			Email:    "b@x.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, session.StatusAnonymous, store.Current().Status)
	})

	t.Run("rejection is surfaced verbatim", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Register", mock.Anything, mock.Anything).
			Return(errors.New("Username already taken"))

		store := newStore(t, kv.NewMemory(), auth)
		store.Bootstrap(context.Background())

		err := store.Register(context.Background(), session.RegisterParams{Username: "bob"})
		require.EqualError(t, err, "Username already taken")
		assert.Equal(t, session.StatusAnonymous, store.Current().Status)
	})
}

func TestStore_Logout(t *testing.T) {
	t.Parallel()

	t.Run("clears memory and storage", func(t *testing.T) {
		t.Parallel()

		storage := kv.NewMemory()
		seedSession(t, storage, "t1", session.Identity{ID: 1, Username: "alice"})

		store := newStore(t, storage, &mockAuthenticator{})
		require.True(t, store.Bootstrap(context.Background()).IsAuthenticated())

		store.Logout(context.Background())

		current := store.Current()
		assert.Equal(t, session.StatusAnonymous, current.Status)
		assert.Nil(t, current.User)
		assert.Empty(t, current.Token)

		_, err := storage.Get(context.Background(), session.TokenKey)
		require.ErrorIs(t, err, kv.ErrKeyNotFound)
		_, err = storage.Get(context.Background(), session.UserKey)
		require.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("memory clears before storage", func(t *testing.T) {
		t.Parallel()

		storage := newGatedStore()
		seedSession(t, storage, "t1", session.Identity{ID: 1, Username: "alice"})

		store := newStore(t, storage, &mockAuthenticator{})
		store.Bootstrap(context.Background())

		done := make(chan struct{})
		go func() {
			store.Logout(context.Background())
			close(done)
		}()

		// The first Delete is now blocked; memory must already be clear.
		<-storage.deleting
		assert.Equal(t, session.StatusAnonymous, store.Current().Status)

		close(storage.release)
		<-done

		_, err := storage.Get(context.Background(), session.TokenKey)
		require.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("storage errors are swallowed", func(t *testing.T) {
		t.Parallel()

		storage := &failingStore{Memory: kv.NewMemory(), failDelete: true}
		store := newStore(t, storage, &mockAuthenticator{})
		store.Bootstrap(context.Background())

		store.Logout(context.Background())
		assert.Equal(t, session.StatusAnonymous, store.Current().Status)
	})
}

func TestStore_Invalidate(t *testing.T) {
	t.Parallel()

	storage := kv.NewMemory()
	seedSession(t, storage, "t1", session.Identity{ID: 1, Username: "alice"})

	store := newStore(t, storage, &mockAuthenticator{})
	require.True(t, store.Bootstrap(context.Background()).IsAuthenticated())

	store.Invalidate(context.Background())

	assert.Equal(t, session.StatusAnonymous, store.Current().Status)
	_, err := storage.Get(context.Background(), session.TokenKey)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
	_, err = storage.Get(context.Background(), session.UserKey)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("observes transitions until unsubscribed", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything).Return(aliceResult("t2"), nil)

		store := newStore(t, kv.NewMemory(), auth)

		var seen []session.Status
		unsubscribe := store.Subscribe(func(s session.Session) {
			seen = append(seen, s.Status)
		})

		store.Bootstrap(context.Background())
		_, err := store.Login(context.Background(), "alice", "right")
		require.NoError(t, err)

		unsubscribe()
		store.Logout(context.Background())

		assert.Equal(t, []session.Status{session.StatusAnonymous, session.StatusAuthenticated}, seen)
	})
}

// Test doubles

type loginOutcome struct {
	session session.Session
	err     error
}

// blockingAuthenticator parks each Login call until the test sends a result
// on the per-call reply channel, allowing deterministic interleaving.
type blockingAuthenticator struct {
	calls chan chan session.AuthResult
}

func newBlockingAuthenticator() *blockingAuthenticator {
	return &blockingAuthenticator{calls: make(chan chan session.AuthResult)}
}

func (b *blockingAuthenticator) Login(ctx context.Context, creds session.Credentials) (session.AuthResult, error) {
	reply := make(chan session.AuthResult)
	b.calls <- reply
	return <-reply, nil
}

func (b *blockingAuthenticator) Register(ctx context.Context, params session.RegisterParams) error {
	return nil
}

// failingStore wraps Memory and fails writes or deletes on demand.
type failingStore struct {
	*kv.Memory
	failDelete bool
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("disk full")
	}
	return f.Memory.Delete(ctx, key)
}

// gatedStore blocks Delete until released, signaling the first attempt.
type gatedStore struct {
	*kv.Memory
	deleting chan struct{}
	release  chan struct{}
	once     chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		Memory:   kv.NewMemory(),
		deleting: make(chan struct{}),
		release:  make(chan struct{}),
		once:     make(chan struct{}, 1),
	}
}

func (g *gatedStore) Delete(ctx context.Context, key string) error {
	select {
	case g.once <- struct{}{}:
		close(g.deleting)
	default:
	}
	<-g.release
	return g.Memory.Delete(ctx, key)
}
