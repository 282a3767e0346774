package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// CreateHabitParams describe a new habit.
type CreateHabitParams struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        HabitType      `json:"type"`
	Frequency   HabitFrequency `json:"frequency"`
	TargetValue int            `json:"targetValue"`
	TargetUnit  string         `json:"targetUnit"`
}

// UpdateHabitParams carry partial habit changes; nil pointers are omitted.
type UpdateHabitParams struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Type        *HabitType      `json:"type,omitempty"`
	Frequency   *HabitFrequency `json:"frequency,omitempty"`
	TargetValue *int            `json:"targetValue,omitempty"`
	TargetUnit  *string         `json:"targetUnit,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

// CompleteHabitParams record a completion. Zero values are omitted so a bare
// completion marks the habit done for today.
type CompleteHabitParams struct {
	CompletionDate string  `json:"completionDate,omitempty"`
	Value          float64 `json:"value,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// ListHabits returns the signed-in user's habits.
func (c *Client) ListHabits(ctx context.Context) ([]Habit, error) {
	var habits []Habit
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// GetHabit returns a single habit by ID.
func (c *Client) GetHabit(ctx context.Context, id int64) (*Habit, error) {
	var habit Habit
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/%d", id), nil, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

// CreateHabit creates a habit.
func (c *Client) CreateHabit(ctx context.Context, params CreateHabitParams) (*Habit, error) {
	var habit Habit
	if err := c.do(ctx, http.MethodPost, "/habits", params, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

// UpdateHabit applies partial changes to a habit.
func (c *Client) UpdateHabit(ctx context.Context, id int64, params UpdateHabitParams) (*Habit, error) {
	var habit Habit
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), params, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

// DeleteHabit removes a habit and its history.
func (c *Client) DeleteHabit(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil)
}

// CompleteHabit records a completion for the habit.
func (c *Client) CompleteHabit(ctx context.Context, id int64, params CompleteHabitParams) (*HabitCompletion, error) {
	var completion HabitCompletion
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/complete", id), params, &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}
