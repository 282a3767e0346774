package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// CreateCompetitionParams describe a new competition.
type CreateCompetitionParams struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        CompetitionType `json:"type"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
}

// ListCompetitions returns competitions visible to the signed-in user.
func (c *Client) ListCompetitions(ctx context.Context) ([]Competition, error) {
	var competitions []Competition
	if err := c.do(ctx, http.MethodGet, "/competitions", nil, &competitions); err != nil {
		return nil, err
	}
	return competitions, nil
}

// GetCompetition returns a competition with its participant standings.
func (c *Client) GetCompetition(ctx context.Context, id int64) (*Competition, error) {
	var competition Competition
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/competitions/%d", id), nil, &competition); err != nil {
		return nil, err
	}
	return &competition, nil
}

// CreateCompetition creates a competition.
func (c *Client) CreateCompetition(ctx context.Context, params CreateCompetitionParams) (*Competition, error) {
	var competition Competition
	if err := c.do(ctx, http.MethodPost, "/competitions", params, &competition); err != nil {
		return nil, err
	}
	return &competition, nil
}

// JoinCompetition enrolls the signed-in user.
func (c *Client) JoinCompetition(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/competitions/%d/join", id), nil, nil)
}

// LeaveCompetition withdraws the signed-in user.
func (c *Client) LeaveCompetition(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/competitions/%d/leave", id), nil, nil)
}
