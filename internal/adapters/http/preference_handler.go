package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// PreferenceHandler handles notification-preference requests
type PreferenceHandler struct {
	preferenceService ports.PreferenceService
	logger            *logger.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService ports.PreferenceService, logger *logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// GetPreferences returns the user's notification preferences, defaults
// applied and account email seeded on first load
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID := getUserIDFromContext(c)
	email := getEmailFromContext(c)

	prefs, err := h.preferenceService.Load(c.Request().Context(), userID, email)
	if err != nil {
		h.logger.Error("Load preferences failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load preferences")
	}

	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences applies a partial preferences update
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs, err := h.preferenceService.Update(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Update preferences failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, prefs)
}
