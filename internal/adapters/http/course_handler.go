package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// CourseHandler handles saved-course requests
type CourseHandler struct {
	courseService ports.CourseService
	logger        *logger.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService ports.CourseService, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns the saved courses with exam annotations
func (h *CourseHandler) ListCourses(c echo.Context) error {
	userID := getUserIDFromContext(c)

	courses, err := h.courseService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List courses failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve courses")
	}

	return c.JSON(http.StatusOK, courses)
}

// SaveCourse adds a course to the saved list
func (h *CourseHandler) SaveCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.SaveCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Save(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Save course failed", "error", err, "user_id", userID, "code", req.Code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save course")
	}

	return c.JSON(http.StatusCreated, course)
}

// RemoveCourse deletes a saved course by code
func (h *CourseHandler) RemoveCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)
	code := c.Param("code")

	err := h.courseService.Remove(c.Request().Context(), userID, code)
	if errors.Is(err, entities.ErrCourseNotSaved) {
		return echo.NewHTTPError(http.StatusNotFound, "Course not saved")
	}
	if err != nil {
		h.logger.Error("Remove course failed", "error", err, "user_id", userID, "code", code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove course")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Course removed"})
}

// CompleteCourse marks a saved course as completed
func (h *CourseHandler) CompleteCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)
	code := c.Param("code")

	course, err := h.courseService.Complete(c.Request().Context(), userID, code)
	if errors.Is(err, entities.ErrCourseNotSaved) {
		return echo.NewHTTPError(http.StatusNotFound, "Course not saved")
	}
	if err != nil {
		h.logger.Error("Complete course failed", "error", err, "user_id", userID, "code", code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update course")
	}

	return c.JSON(http.StatusOK, course)
}
