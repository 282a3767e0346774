// Package session owns the client's authentication state: the signed-in user's
// identity and bearer token, mirrored to a device-local kv.Store so a restart
// can restore the previous session.
//
// The Store is an explicit, dependency-injected state container rather than
// package-level state. It exposes the full lifecycle as named operations:
//
//   - Bootstrap restores a persisted session once at startup
//   - Login authenticates and persists the result
//   - Register creates an account without signing in
//   - Logout clears memory synchronously and storage best-effort
//   - Invalidate is the forced-eviction entry point for the transport layer's
//     unauthorized handler
//
// Consumers read state through Current and observe transitions through
// Subscribe; the Store is the single source of truth for routing decisions,
// and no other component should cache authentication state.
//
// Typical wiring:
//
//	storage := file.New(cfg.StatePath)
//	client := gateway.New(gatewayCfg, storage)
//	store, err := session.New(storage, client.SessionAuthenticator())
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.OnUnauthorized(store.Invalidate)
//
//	current := store.Bootstrap(ctx)
//	if current.IsAuthenticated() {
//		// show signed-in surface
//	}
//
// Concurrent logins are resolved with a sequence guard: only the response
// matching the latest login attempt is applied, so a stale in-flight response
// can never overwrite a newer session.
package session
