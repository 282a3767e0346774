package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/habitgrid/habitkit/core/session"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		value, err := a.prompt("Username: ")
		if err != nil {
			return err
		}
		*username = value
	}
	if *password == "" {
		value, err := a.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = value
	}

	current, err := a.store.Login(ctx, *username, *password)
	if err != nil {
		if errors.Is(err, session.ErrPersistSession) {
			fmt.Fprintln(a.out, "Signed in, but the session could not be saved; you will need to sign in again next time.")
			fmt.Fprintf(a.out, "Signed in as %s.\n", current.User.Username)
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s.\n", current.User.Username)
	return nil
}

func (a *app) cmdLogout(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	a.store.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email address")
	password := fs.String("p", "", "password (prompted when omitted)")
	firstName := fs.String("first", "", "first name (optional)")
	lastName := fs.String("last", "", "last name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		return errors.New("register requires -u and -e")
	}
	if *password == "" {
		value, err := a.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = value
	}

	err := a.store.Register(ctx, session.RegisterParams{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. Run habitctl login to sign in.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	current, err := a.requireAuth()
	if err != nil {
		return err
	}

	// The session store holds the cached identity; the profile endpoint has
	// the authoritative copy. Prefer the server when reachable.
	profile, perr := a.client.Profile(ctx)
	if perr != nil {
		user := current.User
		fmt.Fprintf(a.out, "%s <%s> (cached, server unreachable)\n", user.Username, user.Email)
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", profile.Username, profile.Email)
	if profile.FirstName != "" || profile.LastName != "" {
		fmt.Fprintf(a.out, "Name:   %s\n", strings.TrimSpace(profile.FirstName+" "+profile.LastName))
	}
	fmt.Fprintf(a.out, "Role:   %s\n", profile.Role)
	fmt.Fprintf(a.out, "Joined: %s\n", profile.CreatedAt)
	return nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	scanner := bufio.NewScanner(a.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
