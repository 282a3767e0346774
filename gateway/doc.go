// Package gateway is the typed HTTP client for the HabitGrid API. Every
// feature surface goes through it: authentication, user profiles, habits and
// completions, notifications, friendships, and competitions.
//
// The client attaches the bearer token to each outgoing request, reading it
// fresh from the device-local kv store at call time rather than caching it,
// so a logout or re-login between calls is always respected. Server-side
// failures decode into *APIError carrying the human-readable message verbatim
// for screens to display.
//
// When a response reports the token is no longer valid, the client fires its
// unauthorized handler and otherwise stays out of session management: wire the
// handler to the session store's Invalidate so authorization state has a
// single owner.
//
//	client, err := gateway.New(cfg, storage)
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.OnUnauthorized(store.Invalidate)
//
//	habits, err := client.ListHabits(ctx)
//	var apiErr *gateway.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.Message)
//	}
//
// No retry or implicit timeout policy is applied; callers control cancellation
// through the request context, and an optional client-wide timeout can be set
// in Config.
package gateway
