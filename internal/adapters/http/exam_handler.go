package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// ExamHandler handles exam-schedule lookups
type ExamHandler struct {
	examService ports.ExamService
	logger      *logger.Logger
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examService ports.ExamService, logger *logger.Logger) *ExamHandler {
	return &ExamHandler{
		examService: examService,
		logger:      logger,
	}
}

// LookupExam resolves a course code to its exam entry through the fuzzy
// fallback chain
func (h *ExamHandler) LookupExam(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing course code")
	}

	entry, err := h.examService.Lookup(code)
	if errors.Is(err, entities.ErrExamNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "No exam scheduled for this course")
	}
	if err != nil {
		h.logger.Error("Exam lookup failed", "error", err, "code", code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up exam")
	}

	return c.JSON(http.StatusOK, entry)
}
