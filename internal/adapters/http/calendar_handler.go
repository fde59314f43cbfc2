package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/dates"
	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// CalendarHandler handles calendar-related requests
type CalendarHandler struct {
	calendarService ports.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService ports.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// GetCollection returns the merged event collection with its derived views
func (h *CalendarHandler) GetCollection(c echo.Context) error {
	userID := getUserIDFromContext(c)

	opts := ports.CollectionOptions{
		Lang:    c.QueryParam("lang"),
		Filters: parseTypeFilters(c.QueryParam("types")),
	}

	collection, err := h.calendarService.Collection(c.Request().Context(), userID, opts)
	if err != nil {
		h.logger.Error("Get collection failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute calendar")
	}

	return c.JSON(http.StatusOK, collection)
}

// GetMonthGrid returns one month's rendering metadata and events
func (h *CalendarHandler) GetMonthGrid(c echo.Context) error {
	userID := getUserIDFromContext(c)

	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid month parameter")
	}

	opts := ports.CollectionOptions{
		Lang:    c.QueryParam("lang"),
		Filters: parseTypeFilters(c.QueryParam("types")),
	}

	grid, err := h.calendarService.MonthGrid(c.Request().Context(), userID, year, time.Month(month), opts)
	if err != nil {
		h.logger.Error("Get month grid failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute calendar")
	}

	return c.JSON(http.StatusOK, grid)
}

// CreateEvent handles creating a user event
func (h *CalendarHandler) CreateEvent(c echo.Context) error {
	return h.saveEvent(c, "")
}

// UpdateEvent handles replacing a user event in place
func (h *CalendarHandler) UpdateEvent(c echo.Context) error {
	return h.saveEvent(c, c.Param("id"))
}

func (h *CalendarHandler) saveEvent(c echo.Context, id string) error {
	userID := getUserIDFromContext(c)

	var req ports.SaveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.calendarService.SaveEvent(c.Request().Context(), userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEventReadOnly):
			return echo.NewHTTPError(http.StatusForbidden, "Event is read-only")
		case errors.Is(err, entities.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		case errors.Is(err, entities.ErrInvalidEventDate):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid event date")
		}
		h.logger.Error("Save event failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save event")
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, event)
}

// DeleteEvent handles deleting a user event
func (h *CalendarHandler) DeleteEvent(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id := c.Param("id")

	err := h.calendarService.DeleteEvent(c.Request().Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEventReadOnly):
			return echo.NewHTTPError(http.StatusForbidden, "Event is read-only")
		case errors.Is(err, entities.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		h.logger.Error("Delete event failed", "error", err, "user_id", userID, "event_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete event")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// ExportICS serializes the filtered collection as an iCalendar feed
func (h *CalendarHandler) ExportICS(c echo.Context) error {
	userID := getUserIDFromContext(c)

	opts := ports.CollectionOptions{
		Lang:    c.QueryParam("lang"),
		Filters: parseTypeFilters(c.QueryParam("types")),
	}

	collection, err := h.calendarService.Collection(c.Request().Context(), userID, opts)
	if err != nil {
		h.logger.Error("ICS export failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute calendar")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//CampusBoard//Calendar//EN")

	now := time.Now()
	for _, ev := range collection.Filtered {
		start, err := eventStart(ev)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(ev.ID + "@campusboard")
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Time == "" {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(time.Hour))
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/calendar; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="campusboard.ics"`)
	return c.String(http.StatusOK, cal.Serialize())
}

func eventStart(ev entities.CalendarEvent) (time.Time, error) {
	day, err := dates.ParseDate(ev.Date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if ev.Time == "" {
		return day, nil
	}
	var hour, minute int
	if _, err := fmt.Sscanf(ev.Time, "%d:%d", &hour, &minute); err != nil {
		return day, nil
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}
