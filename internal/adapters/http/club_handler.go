package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// ClubHandler handles club directory and membership requests
type ClubHandler struct {
	clubService ports.ClubService
	logger      *logger.Logger
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService ports.ClubService, logger *logger.Logger) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
		logger:      logger,
	}
}

// ListClubs returns one page of the club directory, falling back to the
// bundled dataset when the backend is down
func (h *ClubHandler) ListClubs(c echo.Context) error {
	filter := ports.ClubFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
	}
	if filter.Offset < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid offset parameter")
	}

	page, err := h.clubService.List(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List clubs failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve clubs")
	}

	return c.JSON(http.StatusOK, page)
}

// GetMemberships returns the user's club memberships
func (h *ClubHandler) GetMemberships(c echo.Context) error {
	userID := getUserIDFromContext(c)

	memberships, err := h.clubService.Memberships(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Get memberships failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusBadGateway, "Club backend unavailable")
	}

	return c.JSON(http.StatusOK, memberships)
}

// JoinClub adds the user to a club
func (h *ClubHandler) JoinClub(c echo.Context) error {
	userID := getUserIDFromContext(c)
	clubID := c.Param("id")

	if err := h.clubService.Join(c.Request().Context(), userID, clubID); err != nil {
		return h.mapMembershipError(c, err, userID, clubID, "Join club failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Joined club"})
}

// LeaveClub removes the user from a club
func (h *ClubHandler) LeaveClub(c echo.Context) error {
	userID := getUserIDFromContext(c)
	clubID := c.Param("id")

	if err := h.clubService.Leave(c.Request().Context(), userID, clubID); err != nil {
		return h.mapMembershipError(c, err, userID, clubID, "Leave club failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Left club"})
}

// SetCalendarSync toggles meeting-occurrence generation for one membership
func (h *ClubHandler) SetCalendarSync(c echo.Context) error {
	userID := getUserIDFromContext(c)
	clubID := c.Param("id")

	synced, err := strconv.ParseBool(c.QueryParam("synced"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid synced parameter")
	}

	if err := h.clubService.SetCalendarSync(c.Request().Context(), userID, clubID, synced); err != nil {
		return h.mapMembershipError(c, err, userID, clubID, "Toggle calendar sync failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Calendar sync updated"})
}

// SubmitClub proposes a new club for the directory
func (h *ClubHandler) SubmitClub(c echo.Context) error {
	var req ports.SubmitClubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.clubService.Submit(c.Request().Context(), req)
	if errors.Is(err, entities.ErrSubmissionExists) {
		// Informational, not a failure: the club is already in review.
		return c.JSON(http.StatusOK, MessageResponse{Message: "Club already submitted"})
	}
	if err != nil {
		h.logger.Error("Submit club failed", "error", err, "name", req.Name)
		return echo.NewHTTPError(http.StatusBadGateway, "Club backend unavailable")
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Club submitted for review"})
}

func (h *ClubHandler) mapMembershipError(c echo.Context, err error, userID, clubID, msg string) error {
	switch {
	case errors.Is(err, entities.ErrOperationInFlight):
		return echo.NewHTTPError(http.StatusConflict, "Operation already in progress for this club")
	case errors.Is(err, entities.ErrClubNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Club not found")
	case errors.Is(err, entities.ErrAlreadyMember):
		return echo.NewHTTPError(http.StatusConflict, "Already a member of this club")
	case errors.Is(err, entities.ErrNotMember):
		return echo.NewHTTPError(http.StatusConflict, "Not a member of this club")
	}
	h.logger.Error(msg, "error", err, "user_id", userID, "club_id", clubID)
	return echo.NewHTTPError(http.StatusBadGateway, "Club backend unavailable")
}
