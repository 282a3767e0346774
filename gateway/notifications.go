package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ListNotifications returns all notifications for the signed-in user.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadNotifications returns only unread notifications.
func (c *Client) UnreadNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/unread", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadNotificationCount returns the number of unread notifications.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.do(ctx, http.MethodGet, "/notifications/count", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil)
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%d", id), nil, nil)
}
