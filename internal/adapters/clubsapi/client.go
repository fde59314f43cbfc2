// Package clubsapi is the HTTP client for the clubs backend. It maps the
// backend's REST surface onto the ClubDirectory port and translates known
// upstream statuses into domain errors; graceful fallback lives in the club
// service, not here.
package clubsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// Client implements the ClubDirectory interface over the clubs backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// New creates a clubs backend client.
func New(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type listResponse struct {
	Clubs []entities.Club `json:"clubs"`
	Total int             `json:"total"`
}

type membershipResponse struct {
	Memberships []entities.ClubMembership `json:"memberships"`
}

// List fetches one page of the club directory.
func (c *Client) List(ctx context.Context, filter ports.ClubFilter) ([]entities.Club, int, error) {
	params := url.Values{}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}

	endpoint := c.baseURL + "/api/clubs"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp, nil); err != nil {
		return nil, 0, err
	}
	return resp.Clubs, resp.Total, nil
}

// Memberships fetches the user's club memberships with sync flags.
func (c *Client) Memberships(ctx context.Context, userID string) ([]entities.ClubMembership, error) {
	endpoint := fmt.Sprintf("%s/api/clubs/user/%s", c.baseURL, url.PathEscape(userID))

	var resp membershipResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Memberships, nil
}

// Join adds the user to a club.
func (c *Client) Join(ctx context.Context, userID, clubID string) error {
	endpoint := fmt.Sprintf("%s/api/clubs/user/%s/join", c.baseURL, url.PathEscape(userID))
	body := map[string]string{"club_id": clubID}
	return c.do(ctx, http.MethodPost, endpoint, body, nil, entities.ErrAlreadyMember)
}

// Leave removes the user from a club.
func (c *Client) Leave(ctx context.Context, userID, clubID string) error {
	endpoint := fmt.Sprintf("%s/api/clubs/user/%s/leave/%s",
		c.baseURL, url.PathEscape(userID), url.PathEscape(clubID))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, entities.ErrNotMember)
}

// SetCalendarSync toggles occurrence generation for one membership.
func (c *Client) SetCalendarSync(ctx context.Context, userID, clubID string, synced bool) error {
	endpoint := fmt.Sprintf("%s/api/clubs/user/%s/calendar/%s?synced=%t",
		c.baseURL, url.PathEscape(userID), url.PathEscape(clubID), synced)
	return c.do(ctx, http.MethodPatch, endpoint, nil, nil, nil)
}

// Submit proposes a new club. An upstream 409 means the club was already
// submitted and maps to entities.ErrSubmissionExists.
func (c *Client) Submit(ctx context.Context, submission entities.ClubSubmission) error {
	endpoint := c.baseURL + "/api/clubs/submit"
	return c.do(ctx, http.MethodPost, endpoint, submission, nil, entities.ErrSubmissionExists)
}

// do performs one backend call, decoding the response into out when out is
// non-nil. conflict is the sentinel an upstream 409 maps to; nil turns a
// conflict into a generic status error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}, conflict error) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.logger.LogBackendCall("clubs", method+" "+endpoint, float64(time.Since(start).Milliseconds()), err)
	if err != nil {
		return fmt.Errorf("clubs backend: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict && conflict != nil:
		return conflict
	case resp.StatusCode == http.StatusNotFound:
		return entities.ErrClubNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("clubs backend: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
