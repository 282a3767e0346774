package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/habitgrid/habitkit/gateway"
)

func (a *app) cmdHabits(ctx context.Context, args []string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return a.habitsList(ctx)
	case "add":
		return a.habitsAdd(ctx, args[1:])
	case "done":
		return a.habitsDone(ctx, args[1:])
	case "rm":
		return a.habitsRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown habits subcommand %q: %w", args[0], errUsage)
	}
}

func (a *app) habitsList(ctx context.Context) error {
	habits, err := a.client.ListHabits(ctx)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Fprintln(a.out, "No habits yet. Add one with habitctl habits add.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		state := "active"
		if !h.IsActive {
			state = "paused"
		}
		rows = append(rows, []string{
			strconv.FormatInt(h.ID, 10),
			h.Name,
			string(h.Type),
			string(h.Frequency),
			fmt.Sprintf("%d %s", h.TargetValue, h.TargetUnit),
			state,
		})
	}
	table(a.out, []string{"ID", "NAME", "TYPE", "FREQUENCY", "TARGET", "STATE"}, rows)
	return nil
}

func (a *app) habitsAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("habits add", flag.ContinueOnError)
	name := fs.String("name", "", "habit name")
	description := fs.String("desc", "", "description (optional)")
	habitType := fs.String("type", string(gateway.HabitTypeHealth), "habit type")
	frequency := fs.String("freq", string(gateway.FrequencyDaily), "DAILY, WEEKLY, or MONTHLY")
	targetValue := fs.Int("target", 1, "target value per period")
	targetUnit := fs.String("unit", "times", "target unit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("habits add requires -name")
	}

	habit, err := a.client.CreateHabit(ctx, gateway.CreateHabitParams{
		Name:        *name,
		Description: *description,
		Type:        gateway.HabitType(*habitType),
		Frequency:   gateway.HabitFrequency(*frequency),
		TargetValue: *targetValue,
		TargetUnit:  *targetUnit,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created habit %d: %s\n", habit.ID, habit.Name)
	return nil
}

func (a *app) habitsDone(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("habits done", flag.ContinueOnError)
	value := fs.Float64("value", 0, "measured value (optional)")
	notes := fs.String("notes", "", "completion notes (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs.Args(), "habits done")
	if err != nil {
		return err
	}

	completion, err := a.client.CompleteHabit(ctx, id, gateway.CompleteHabitParams{
		Value: *value,
		Notes: *notes,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Completed habit %d on %s.\n", completion.HabitID, completion.CompletionDate)
	return nil
}

func (a *app) habitsRemove(ctx context.Context, args []string) error {
	id, err := parseID(args, "habits rm")
	if err != nil {
		return err
	}
	if err := a.client.DeleteHabit(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted habit %d.\n", id)
	return nil
}

func parseID(args []string, command string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s requires exactly one id: %w", command, errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
