// Package habitkit is the official Go client for the HabitGrid API. It bundles
// a session store with pluggable device-local persistence, a typed gateway
// client covering the full REST surface (auth, habits, friends, notifications,
// competitions), and the habitctl command-line front end.
//
// The pieces are wired together explicitly rather than through package-level
// state: construct a kv.Store, hand it to both the gateway client and the
// session store, and connect the client's unauthorized handler to the store's
// Invalidate method so the store remains the single owner of authorization
// state.
package habitkit

// Version is the SDK version reported in the User-Agent header of every
// gateway request.
const Version = "0.3.1"
