package main

import (
	"context"
	"fmt"
	"strconv"
)

func (a *app) cmdFriends(ctx context.Context, args []string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return a.friendsList(ctx)
	case "requests":
		return a.friendsRequests(ctx)
	case "add":
		return a.friendsAdd(ctx, args[1:])
	case "accept":
		return a.friendsAccept(ctx, args[1:])
	case "decline":
		return a.friendsDecline(ctx, args[1:])
	case "rm":
		return a.friendsRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown friends subcommand %q: %w", args[0], errUsage)
	}
}

func (a *app) friendsList(ctx context.Context) error {
	friends, err := a.client.ListFriends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Fprintln(a.out, "No friends yet.")
		return nil
	}

	rows := make([][]string, 0, len(friends))
	for _, f := range friends {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			f.Username,
			f.Email,
			shortDate(f.CreatedAt),
		})
	}
	table(a.out, []string{"ID", "USERNAME", "EMAIL", "JOINED"}, rows)
	return nil
}

func (a *app) friendsRequests(ctx context.Context) error {
	pending, err := a.client.PendingFriendRequests(ctx)
	if err != nil {
		return err
	}
	sent, err := a.client.SentFriendRequests(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 && len(sent) == 0 {
		fmt.Fprintln(a.out, "No open friend requests.")
		return nil
	}

	if len(pending) > 0 {
		fmt.Fprintln(a.out, "Incoming:")
		rows := make([][]string, 0, len(pending))
		for _, f := range pending {
			rows = append(rows, []string{
				strconv.FormatInt(f.ID, 10),
				f.Requester.Username,
				shortDate(f.CreatedAt),
			})
		}
		table(a.out, []string{"ID", "FROM", "SENT"}, rows)
	}
	if len(sent) > 0 {
		fmt.Fprintln(a.out, "Outgoing:")
		rows := make([][]string, 0, len(sent))
		for _, f := range sent {
			rows = append(rows, []string{
				strconv.FormatInt(f.ID, 10),
				f.Addressee.Username,
				shortDate(f.CreatedAt),
			})
		}
		table(a.out, []string{"ID", "TO", "SENT"}, rows)
	}
	return nil
}

func (a *app) friendsAdd(ctx context.Context, args []string) error {
	userID, err := parseID(args, "friends add")
	if err != nil {
		return err
	}
	friendship, err := a.client.SendFriendRequest(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Friend request sent to %s.\n", friendship.Addressee.Username)
	return nil
}

func (a *app) friendsAccept(ctx context.Context, args []string) error {
	id, err := parseID(args, "friends accept")
	if err != nil {
		return err
	}
	friendship, err := a.client.AcceptFriendRequest(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "You are now friends with %s.\n", friendship.Requester.Username)
	return nil
}

func (a *app) friendsDecline(ctx context.Context, args []string) error {
	id, err := parseID(args, "friends decline")
	if err != nil {
		return err
	}
	if _, err := a.client.DeclineFriendRequest(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Declined friend request %d.\n", id)
	return nil
}

func (a *app) friendsRemove(ctx context.Context, args []string) error {
	id, err := parseID(args, "friends rm")
	if err != nil {
		return err
	}
	if err := a.client.RemoveFriend(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed friendship %d.\n", id)
	return nil
}
