// Command habitctl is a terminal client for the HabitGrid habit-tracking
// service: sign in, track habits, manage friends, follow competitions, and
// watch notifications, all against the remote API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/habitgrid/habitkit"
	"github.com/habitgrid/habitkit/core/kv"
	"github.com/habitgrid/habitkit/core/session"
	"github.com/habitgrid/habitkit/gateway"
	"github.com/habitgrid/habitkit/integration/kv/file"
	"github.com/habitgrid/habitkit/integration/kv/redis"
	"github.com/habitgrid/habitkit/integration/kv/sqlite"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "habitctl:", err)
		os.Exit(1)
	}
}

// app carries the wired SDK pieces every subcommand needs.
type app struct {
	store  *session.Store
	client *gateway.Client
	out    io.Writer
	in     io.Reader
}

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	if args[0] == "version" {
		fmt.Println("habitctl", habitkit.Version)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	client, err := gateway.New(cfg.Gateway, storage, gateway.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	store, err := session.New(storage, client.SessionAuthenticator(), session.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	// The transport signals token eviction into the store; it never clears
	// persisted state on its own.
	client.OnUnauthorized(store.Invalidate)

	store.Bootstrap(ctx)

	a := &app{store: store, client: client, out: os.Stdout, in: os.Stdin}
	return a.dispatch(ctx, args[0], args[1:])
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "whoami":
		return a.cmdWhoami(ctx, args)
	case "status":
		return a.cmdStatus(ctx, args)
	case "habits":
		return a.cmdHabits(ctx, args)
	case "friends":
		return a.cmdFriends(ctx, args)
	case "notifications":
		return a.cmdNotifications(ctx, args)
	case "competitions":
		return a.cmdCompetitions(ctx, args)
	case "watch":
		return a.cmdWatch(ctx, args)
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

// requireAuth gates commands on the session store, the single source of truth
// for authentication state.
func (a *app) requireAuth() (session.Session, error) {
	current := a.store.Current()
	if !current.IsAuthenticated() {
		return session.Session{}, errors.New("not signed in; run habitctl login")
	}
	return current, nil
}

func openStorage(ctx context.Context, cfg config) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case "sqlite":
		path, err := cfg.statePath("state.db")
		if err != nil {
			return nil, nil, err
		}
		store, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		store, err := redis.New(ctx, redis.Config{
			ConnectionURL: cfg.RedisURL,
			KeyPrefix:     cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		path, err := cfg.statePath("state.json")
		if err != nil {
			return nil, nil, err
		}
		store, err := file.New(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `habitctl - terminal client for HabitGrid

Usage:
  habitctl <command> [flags]

Commands:
  login          sign in and persist the session
  logout         sign out and clear the persisted session
  register       create an account (sign in separately afterwards)
  whoami         show the signed-in user
  status         dashboard: profile, habits, unread count, friends
  habits         list|add|done|rm
  friends        list|requests|add|accept|decline|rm
  notifications  list|unread|read|read-all|rm
  competitions   list|show|create|join|leave
  watch          stream notifications as the server pushes them
  version        print the client version

Environment:
  HABITGRID_API_URL    API base URL (default http://localhost:8080/api)
  HABITCTL_STORE       session state backend: file, sqlite, redis
  HABITCTL_STATE_PATH  override the state file location
  LOG_LEVEL            debug enables verbose colorized logging
`)
}
