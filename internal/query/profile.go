package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

// profilesTable is the backend table holding one JSON profile document per user.
const profilesTable = "profiles"

// GetProfile fetches the profile document for a user.
// Returns found=false when no row exists (first login).
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error) {
	var rows []models.UserProfile
	err := c.From(profilesTable).Eq("user_id", userID).Into(ctx, &rows)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}

// InsertProfile creates a new profile row.
// The caller checks existence first; this check-then-insert is not atomic,
// so two near-simultaneous first logins can double-insert.
func (c *Client) InsertProfile(ctx context.Context, profile *models.UserProfile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/"+profilesTable, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	return c.do(req, nil)
}

// UpdateProfile replaces the whole profile document for a user.
// No concurrency token: last writer wins.
func (c *Client) UpdateProfile(ctx context.Context, userID string, profile *models.UserProfile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	u := c.baseURL + "/rest/v1/" + profilesTable + "?user_id=eq." + userID
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	return c.do(req, nil)
}
