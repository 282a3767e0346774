package session

import "context"

// Credentials carry a login attempt. They are transient and never persisted.
type Credentials struct {
	Username string
	Password string
}

// RegisterParams carry a registration request. Password handling matches
// Credentials: transient, never persisted.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is the authentication endpoint's successful response: the bearer
// token plus the identity fields the server returns alongside it.
type AuthResult struct {
	Token    string
	ID       int64
	Username string
	Email    string
	Role     string
}

// Authenticator is the Store's view of the remote authentication endpoints.
// The gateway client provides an implementation via SessionAuthenticator.
// Errors are propagated to the caller verbatim so screens can surface the
// server's message unchanged.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, params RegisterParams) error
}
