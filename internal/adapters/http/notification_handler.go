package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// NotificationHandler handles reminder-scheduling requests
type NotificationHandler struct {
	notificationService ports.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService ports.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ScheduleReminder forwards a reminder-eligible event to the notify backend
func (h *NotificationHandler) ScheduleReminder(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var event entities.CalendarEvent
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	err := h.notificationService.Schedule(c.Request().Context(), userID, event)
	switch {
	case errors.Is(err, entities.ErrReminderIneligible):
		return echo.NewHTTPError(http.StatusBadRequest, "Event is not eligible for reminders")
	case errors.Is(err, entities.ErrNotificationBackend):
		return echo.NewHTTPError(http.StatusBadGateway, "Notification backend unavailable")
	case err != nil:
		h.logger.Error("Schedule reminder failed", "error", err, "user_id", userID, "event_id", event.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to schedule reminder")
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Reminder scheduled"})
}

// ListScheduled returns the events with pending reminders
func (h *NotificationHandler) ListScheduled(c echo.Context) error {
	userID := getUserIDFromContext(c)

	events, err := h.notificationService.Scheduled(c.Request().Context(), userID)
	if errors.Is(err, entities.ErrNotificationBackend) {
		return echo.NewHTTPError(http.StatusBadGateway, "Notification backend unavailable")
	}
	if err != nil {
		h.logger.Error("List scheduled reminders failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list reminders")
	}

	return c.JSON(http.StatusOK, events)
}

// CancelReminder removes a pending reminder
func (h *NotificationHandler) CancelReminder(c echo.Context) error {
	id := c.Param("id")

	err := h.notificationService.Cancel(c.Request().Context(), id)
	if errors.Is(err, entities.ErrNotificationBackend) {
		return echo.NewHTTPError(http.StatusBadGateway, "Notification backend unavailable")
	}
	if err != nil {
		h.logger.Error("Cancel reminder failed", "error", err, "event_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to cancel reminder")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Reminder cancelled"})
}
