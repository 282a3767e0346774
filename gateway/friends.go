package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ListFriends returns accepted friends as users.
func (c *Client) ListFriends(ctx context.Context) ([]User, error) {
	var friends []User
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// PendingFriendRequests returns requests awaiting the signed-in user's answer.
func (c *Client) PendingFriendRequests(ctx context.Context) ([]Friendship, error) {
	var requests []Friendship
	if err := c.do(ctx, http.MethodGet, "/friends/requests/pending", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SentFriendRequests returns requests the signed-in user has sent.
func (c *Client) SentFriendRequests(ctx context.Context) ([]Friendship, error) {
	var requests []Friendship
	if err := c.do(ctx, http.MethodGet, "/friends/requests/sent", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SendFriendRequest sends a friend request to the given user.
func (c *Client) SendFriendRequest(ctx context.Context, userID int64) (*Friendship, error) {
	var friendship Friendship
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/friends/request/%d", userID), nil, &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

// AcceptFriendRequest accepts a pending request.
func (c *Client) AcceptFriendRequest(ctx context.Context, friendshipID int64) (*Friendship, error) {
	var friendship Friendship
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/friends/accept/%d", friendshipID), nil, &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

// DeclineFriendRequest declines a pending request.
func (c *Client) DeclineFriendRequest(ctx context.Context, friendshipID int64) (*Friendship, error) {
	var friendship Friendship
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/friends/decline/%d", friendshipID), nil, &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

// RemoveFriend deletes an existing friendship.
func (c *Client) RemoveFriend(ctx context.Context, friendshipID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/friends/%d", friendshipID), nil, nil)
}
