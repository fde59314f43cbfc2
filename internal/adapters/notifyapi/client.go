// Package notifyapi is the HTTP client for the notification-scheduling
// backend, implementing the NotificationGateway port.
package notifyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
)

// Client implements the NotificationGateway interface over the notify
// backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// New creates a notify backend client.
func New(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type scheduleRequest struct {
	UserID string                 `json:"user_id"`
	Event  entities.CalendarEvent `json:"event"`
}

type scheduledResponse struct {
	Events []entities.CalendarEvent `json:"events"`
}

// Schedule persists a reminder-eligible event server-side and queues its
// delivery.
func (c *Client) Schedule(ctx context.Context, userID string, event entities.CalendarEvent) error {
	endpoint := c.baseURL + "/api/notifications/schedule"
	return c.do(ctx, http.MethodPost, endpoint, scheduleRequest{UserID: userID, Event: event}, nil)
}

// Scheduled lists the events with pending reminders for the user.
func (c *Client) Scheduled(ctx context.Context, userID string) ([]entities.CalendarEvent, error) {
	endpoint := fmt.Sprintf("%s/api/notifications/events/%s", c.baseURL, url.PathEscape(userID))

	var resp scheduledResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// Cancel removes a pending reminder by event id.
func (c *Client) Cancel(ctx context.Context, eventID string) error {
	endpoint := fmt.Sprintf("%s/api/notifications/events/%s", c.baseURL, url.PathEscape(eventID))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
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
	c.logger.LogBackendCall("notify", method+" "+endpoint, float64(time.Since(start).Milliseconds()), err)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrNotificationBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: unexpected status %d", entities.ErrNotificationBackend, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
