package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/entities"
)

// getUserIDFromContext returns the authenticated user id set by the
// identity middleware, or "" for unauthenticated requests.
func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get("user_id").(string); ok {
		return id
	}
	return ""
}

// getEmailFromContext returns the account email claim, when present.
func getEmailFromContext(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

// parseTypeFilters turns a "types" query parameter (CSV of event types)
// into a display filter map. An absent parameter means no filtering.
func parseTypeFilters(raw string) map[entities.EventType]bool {
	if raw == "" {
		return nil
	}
	filters := map[entities.EventType]bool{
		entities.EventTypeAcademic: false,
		entities.EventTypeUnion:    false,
		entities.EventTypeClub:     false,
		entities.EventTypePersonal: false,
	}
	for _, part := range strings.Split(raw, ",") {
		t := entities.EventType(strings.TrimSpace(strings.ToLower(part)))
		if t.IsValid() {
			filters[t] = true
		}
	}
	return filters
}

// queryInt parses an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type PaginatedResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
