package main

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/habitgrid/habitkit/gateway"
)

// cmdStatus renders a dashboard from several endpoints fetched concurrently.
func (a *app) cmdStatus(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	var (
		profile *gateway.User
		habits  []gateway.Habit
		unread  int64
		friends []gateway.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = a.client.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		habits, err = a.client.ListHabits(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = a.client.UnreadNotificationCount(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		friends, err = a.client.ListFriends(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	active := 0
	for _, h := range habits {
		if h.IsActive {
			active++
		}
	}

	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", profile.Username, profile.Email)
	fmt.Fprintf(a.out, "Habits:        %d (%d active)\n", len(habits), active)
	fmt.Fprintf(a.out, "Friends:       %d\n", len(friends))
	fmt.Fprintf(a.out, "Unread:        %s\n", strconv.FormatInt(unread, 10))
	return nil
}
