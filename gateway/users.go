package gateway

import (
	"context"
	"net/http"
)

// UpdateProfileParams are the user fields the profile endpoint accepts.
// Nil pointers are omitted, leaving the server-side value untouched.
type UpdateProfileParams struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// Profile returns the signed-in user's account.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies partial changes to the signed-in user's account.
func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/users/profile", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
