package session

import "time"

// Storage keys for the persisted session. The token is stored raw, the
// identity as JSON. The gateway client reads TokenKey directly on every
// request, so the two packages must agree on these values.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Status describes the session lifecycle state.
type Status int

const (
	// StatusLoading is the initial state until Bootstrap has read persisted
	// storage. Route gating should hold off while loading.
	StatusLoading Status = iota
	// StatusAnonymous means no user is signed in.
	StatusAnonymous
	// StatusAuthenticated means a user and token are present.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is an immutable snapshot of the authenticated user as received
// from the authentication endpoint or restored from persisted storage. The
// client never mutates it field by field. JSON tags match both the wire
// format and the persisted UserKey value.
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// Session is a point-in-time snapshot of authentication state. Once Status
// is past StatusLoading, Token is present if and only if User is present.
type Session struct {
	User   *Identity
	Token  string
	Status Status
}

// IsAuthenticated reports whether a user is signed in.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// IsLoading reports whether the store is still restoring persisted state.
func (s Session) IsLoading() bool {
	return s.Status == StatusLoading
}
