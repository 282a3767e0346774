package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/habitgrid/habitkit/gateway"
)

func (a *app) cmdCompetitions(ctx context.Context, args []string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return a.competitionsList(ctx)
	case "show":
		return a.competitionsShow(ctx, args[1:])
	case "create":
		return a.competitionsCreate(ctx, args[1:])
	case "join":
		id, err := parseID(args[1:], "competitions join")
		if err != nil {
			return err
		}
		if err := a.client.JoinCompetition(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Joined competition %d.\n", id)
		return nil
	case "leave":
		id, err := parseID(args[1:], "competitions leave")
		if err != nil {
			return err
		}
		if err := a.client.LeaveCompetition(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Left competition %d.\n", id)
		return nil
	default:
		return fmt.Errorf("unknown competitions subcommand %q: %w", args[0], errUsage)
	}
}

func (a *app) competitionsList(ctx context.Context) error {
	competitions, err := a.client.ListCompetitions(ctx)
	if err != nil {
		return err
	}
	if len(competitions) == 0 {
		fmt.Fprintln(a.out, "No competitions.")
		return nil
	}

	rows := make([][]string, 0, len(competitions))
	for _, c := range competitions {
		state := "active"
		if !c.IsActive {
			state = "ended"
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			string(c.Type),
			shortDate(c.StartDate),
			shortDate(c.EndDate),
			strconv.Itoa(len(c.Participants)),
			state,
		})
	}
	table(a.out, []string{"ID", "NAME", "TYPE", "START", "END", "PLAYERS", "STATE"}, rows)
	return nil
}

func (a *app) competitionsShow(ctx context.Context, args []string) error {
	id, err := parseID(args, "competitions show")
	if err != nil {
		return err
	}
	competition, err := a.client.GetCompetition(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", competition.Name, competition.Type)
	if competition.Description != "" {
		fmt.Fprintln(a.out, competition.Description)
	}
	fmt.Fprintf(a.out, "Runs %s to %s\n\n", shortDate(competition.StartDate), shortDate(competition.EndDate))

	if len(competition.Participants) == 0 {
		fmt.Fprintln(a.out, "No participants yet.")
		return nil
	}
	rows := make([][]string, 0, len(competition.Participants))
	for _, p := range competition.Participants {
		rows = append(rows, []string{
			strconv.Itoa(p.Rank),
			p.User.Username,
			strconv.Itoa(p.Score),
		})
	}
	table(a.out, []string{"RANK", "PLAYER", "SCORE"}, rows)
	return nil
}

func (a *app) competitionsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("competitions create", flag.ContinueOnError)
	name := fs.String("name", "", "competition name")
	description := fs.String("desc", "", "description (optional)")
	compType := fs.String("type", string(gateway.CompetitionStreak), "STREAK, COMPLETION_COUNT, or TIME_BASED")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *start == "" || *end == "" {
		return fmt.Errorf("competitions create requires -name, -start, and -end")
	}

	competition, err := a.client.CreateCompetition(ctx, gateway.CreateCompetitionParams{
		Name:        *name,
		Description: *description,
		Type:        gateway.CompetitionType(*compType),
		StartDate:   *start,
		EndDate:     *end,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created competition %d: %s\n", competition.ID, competition.Name)
	return nil
}
