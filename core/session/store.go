package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/habitgrid/habitkit/core/kv"
	"github.com/habitgrid/habitkit/pkg/logger"
)

// Store holds the current session and keeps the device-local kv store in sync
// with it. All methods are safe for concurrent use, though the expected usage
// is the single event loop of an interactive client.
type Store struct {
	auth    Authenticator
	storage kv.Store
	log     *slog.Logger

	mu       sync.Mutex
	current  Session
	loginSeq uint64
	subs     map[uint64]func(Session)
	nextSub  uint64
}

// New creates a session store in the loading state. Call Bootstrap once at
// startup to restore any persisted session before consulting Current.
func New(storage kv.Store, auth Authenticator, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if auth == nil {
		return nil, ErrMissingAuthenticator
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Store{
		auth:    auth,
		storage: storage,
		log:     cfg.Logger.With(logger.Component("session")),
		current: Session{Status: StatusLoading},
		subs:    make(map[uint64]func(Session)),
	}, nil
}

// Current returns the session snapshot as of this call.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to be called after every state transition with the
// new snapshot. The returned function removes the subscription. Callbacks run
// synchronously on the mutating goroutine and must not call back into the
// store's mutating operations.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Bootstrap restores a previously persisted session. Both the token and a
// decodable identity must be present; anything else, including storage read
// errors, yields an anonymous session. Bootstrap never fails: a corrupt or
// unreadable store means "no session", not a fatal error.
func (s *Store) Bootstrap(ctx context.Context) Session {
	next := Session{Status: StatusAnonymous}

	token, tokenErr := s.storage.Get(ctx, TokenKey)
	rawUser, userErr := s.storage.Get(ctx, UserKey)

	switch {
	case tokenErr == nil && userErr == nil && token != "":
		var identity Identity
		if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
			s.log.DebugContext(ctx, "discarding undecodable persisted session", logger.Error(err))
		} else {
			next = Session{User: &identity, Token: token, Status: StatusAuthenticated}
		}
	case tokenErr != nil && !errors.Is(tokenErr, kv.ErrKeyNotFound):
		s.log.DebugContext(ctx, "failed to read persisted token", logger.Error(tokenErr))
	case userErr != nil && !errors.Is(userErr, kv.ErrKeyNotFound):
		s.log.DebugContext(ctx, "failed to read persisted user", logger.Error(userErr))
	}

	s.apply(next)
	s.log.DebugContext(ctx, "bootstrap complete", slog.String("status", next.Status.String()))
	return next
}

// Login authenticates with the remote endpoint and, on success, updates the
// in-memory session and persists it. On rejection the session is left
// untouched and the error is returned verbatim for the caller to surface.
//
// If a newer login, logout, or invalidation completed while this call was in
// flight, the result is discarded and ErrLoginSuperseded returned; only the
// response matching the latest attempt is ever applied.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	s.mu.Lock()
	s.loginSeq++
	seq := s.loginSeq
	s.mu.Unlock()

	result, err := s.auth.Login(ctx, Credentials{Username: username, Password: password})
	if err != nil {
		return s.Current(), err
	}

	// The auth response carries no creation timestamp, so the snapshot is
	// stamped with the login time, matching what gets persisted.
	identity := &Identity{
		ID:        result.ID,
		Username:  result.Username,
		Email:     result.Email,
		Role:      result.Role,
		CreatedAt: time.Now().UTC(),
	}
	next := Session{User: identity, Token: result.Token, Status: StatusAuthenticated}

	s.mu.Lock()
	if seq != s.loginSeq {
		current := s.current
		s.mu.Unlock()
		s.log.DebugContext(ctx, "discarding stale login response", logger.Username(username))
		return current, ErrLoginSuperseded
	}
	s.current = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, next)
	s.log.InfoContext(ctx, "signed in", logger.Username(result.Username))

	var persistErr error
	if err := s.storage.Set(ctx, TokenKey, result.Token); err != nil {
		persistErr = err
	}
	if raw, err := json.Marshal(identity); err != nil {
		persistErr = errors.Join(persistErr, err)
	} else if err := s.storage.Set(ctx, UserKey, string(raw)); err != nil {
		persistErr = errors.Join(persistErr, err)
	}
	if persistErr != nil {
		// The in-memory session stands; the next bootstrap just won't see it.
		return next, errors.Join(ErrPersistSession, persistErr)
	}

	return next, nil
}

// Register creates an account. It never mutates session state: the product
// requires an explicit login after registration. Rejections (for example a
// duplicate username) are returned verbatim.
func (s *Store) Register(ctx context.Context, params RegisterParams) error {
	if err := s.auth.Register(ctx, params); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "registered", logger.Username(params.Username))
	return nil
}

// Logout clears the in-memory session synchronously, then clears persisted
// storage best-effort. Storage errors are swallowed: the worst case is a
// stale entry that the next bootstrap still validates against the server.
func (s *Store) Logout(ctx context.Context) {
	s.clear(ctx, "signed out")
}

// Invalidate is the forced-eviction path for the transport layer: the gateway
// client calls it when a response indicates the bearer token is no longer
// valid. Behavior matches Logout; keeping the entry point separate means the
// transport never writes to persisted storage itself.
func (s *Store) Invalidate(ctx context.Context) {
	s.clear(ctx, "session invalidated by gateway")
}

func (s *Store) clear(ctx context.Context, reason string) {
	next := Session{Status: StatusAnonymous}

	s.mu.Lock()
	// Bump the sequence so an in-flight login cannot resurrect the session.
	s.loginSeq++
	s.current = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, next)
	s.log.InfoContext(ctx, reason)

	if err := s.storage.Delete(ctx, TokenKey); err != nil {
		s.log.DebugContext(ctx, "failed to clear persisted token", logger.Error(err))
	}
	if err := s.storage.Delete(ctx, UserKey); err != nil {
		s.log.DebugContext(ctx, "failed to clear persisted user", logger.Error(err))
	}
}

func (s *Store) apply(next Session) {
	s.mu.Lock()
	s.current = next
	subs := s.snapshotSubs()
	s.mu.Unlock()
	s.notify(subs, next)
}

// snapshotSubs must be called with s.mu held.
func (s *Store) snapshotSubs() []func(Session) {
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func (s *Store) notify(subs []func(Session), next Session) {
	for _, fn := range subs {
		fn(next)
	}
}
