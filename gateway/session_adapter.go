package gateway

import (
	"context"

	"github.com/habitgrid/habitkit/core/session"
)

// sessionAuthenticator adapts the gateway's auth endpoints to the session
// store's Authenticator interface.
type sessionAuthenticator struct {
	client *Client
}

// SessionAuthenticator returns an adapter implementing session.Authenticator,
// so the session store can drive login and registration through this client
// without depending on its concrete type.
func (c *Client) SessionAuthenticator() session.Authenticator {
	return sessionAuthenticator{client: c}
}

func (a sessionAuthenticator) Login(ctx context.Context, creds session.Credentials) (session.AuthResult, error) {
	resp, err := a.client.Login(ctx, LoginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return session.AuthResult{
		Token:    resp.Token,
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}, nil
}

func (a sessionAuthenticator) Register(ctx context.Context, params session.RegisterParams) error {
	_, err := a.client.Register(ctx, RegisterRequest{
		Username:  params.Username,
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	return err
}
