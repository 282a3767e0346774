package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/habitgrid/habitkit/gateway"
)

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		notifications, err := a.client.ListNotifications(ctx)
		if err != nil {
			return err
		}
		return a.printNotifications(notifications)
	case "unread":
		notifications, err := a.client.UnreadNotifications(ctx)
		if err != nil {
			return err
		}
		return a.printNotifications(notifications)
	case "read":
		id, err := parseID(args[1:], "notifications read")
		if err != nil {
			return err
		}
		if err := a.client.MarkNotificationRead(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Marked notification %d read.\n", id)
		return nil
	case "read-all":
		if err := a.client.MarkAllNotificationsRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Marked all notifications read.")
		return nil
	case "rm":
		id, err := parseID(args[1:], "notifications rm")
		if err != nil {
			return err
		}
		if err := a.client.DeleteNotification(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted notification %d.\n", id)
		return nil
	default:
		return fmt.Errorf("unknown notifications subcommand %q: %w", args[0], errUsage)
	}
}

func (a *app) printNotifications(notifications []gateway.Notification) error {
	if len(notifications) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}

	rows := make([][]string, 0, len(notifications))
	for _, n := range notifications {
		marker := " "
		if n.Status == gateway.NotificationUnread {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			strconv.FormatInt(n.ID, 10),
			string(n.Type),
			n.Title,
			shortDate(n.CreatedAt),
		})
	}
	table(a.out, []string{" ", "ID", "TYPE", "TITLE", "DATE"}, rows)
	return nil
}

// cmdWatch streams notifications over the websocket until interrupted.
func (a *app) cmdWatch(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	stream, err := a.client.OpenNotificationStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	fmt.Fprintln(a.out, "Watching for notifications; press Ctrl-C to stop.")
	for n := range stream.Notifications() {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", n.Type, n.Title, n.Message)
	}

	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
