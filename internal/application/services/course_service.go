package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/domain/examtable"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// CourseService tracks the user's saved/completed course list, persisted
// write-through like the calendar. Responses are annotated with the exam
// entry when the exam table knows the code.
type CourseService struct {
	repo   ports.CourseRepository
	table  *examtable.Table
	logger *logger.Logger
	now    func() time.Time
}

// NewCourseService creates a new course service.
func NewCourseService(repo ports.CourseRepository, table *examtable.Table, logger *logger.Logger) *CourseService {
	return &CourseService{repo: repo, table: table, logger: logger, now: time.Now}
}

// WithClock replaces the reference clock; tests use it to pin SavedAt.
func (s *CourseService) WithClock(now func() time.Time) *CourseService {
	s.now = now
	return s
}

// List returns the saved courses with exam annotations.
func (s *CourseService) List(ctx context.Context, userID string) ([]ports.SavedCourseView, error) {
	courses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved courses: %w", err)
	}

	views := make([]ports.SavedCourseView, len(courses))
	for i, c := range courses {
		views[i] = s.annotate(c)
	}
	return views, nil
}

// Save adds a course (idempotent on normalized code) and returns its view.
func (s *CourseService) Save(ctx context.Context, userID string, req ports.SaveCourseRequest) (*ports.SavedCourseView, error) {
	code := examtable.Normalize(req.Code)

	courses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved courses: %w", err)
	}

	for _, c := range courses {
		if c.Code == code {
			view := s.annotate(c)
			return &view, nil
		}
	}

	course := entities.SavedCourse{
		Code:    code,
		Title:   req.Title,
		SavedAt: s.now(),
	}
	courses = append(courses, course)

	if err := s.repo.Save(ctx, userID, courses); err != nil {
		return nil, fmt.Errorf("failed to persist saved courses: %w", err)
	}

	s.logger.Info("Course saved", "user_id", userID, "code", code)

	view := s.annotate(course)
	return &view, nil
}

// Remove deletes a saved course by code.
func (s *CourseService) Remove(ctx context.Context, userID, code string) error {
	normalized := examtable.Normalize(code)

	courses, err := s.repo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load saved courses: %w", err)
	}

	idx := -1
	for i, c := range courses {
		if c.Code == normalized {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ErrCourseNotSaved
	}

	courses = append(courses[:idx], courses[idx+1:]...)
	if err := s.repo.Save(ctx, userID, courses); err != nil {
		return fmt.Errorf("failed to persist saved courses: %w", err)
	}

	s.logger.Info("Course removed", "user_id", userID, "code", normalized)
	return nil
}

// Complete marks a saved course as completed.
func (s *CourseService) Complete(ctx context.Context, userID, code string) (*ports.SavedCourseView, error) {
	normalized := examtable.Normalize(code)

	courses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved courses: %w", err)
	}

	for i, c := range courses {
		if c.Code == normalized {
			courses[i].Completed = true
			if err := s.repo.Save(ctx, userID, courses); err != nil {
				return nil, fmt.Errorf("failed to persist saved courses: %w", err)
			}
			view := s.annotate(courses[i])
			return &view, nil
		}
	}
	return nil, entities.ErrCourseNotSaved
}

func (s *CourseService) annotate(course entities.SavedCourse) ports.SavedCourseView {
	view := ports.SavedCourseView{SavedCourse: course}
	entry, err := s.table.Lookup(course.Code)
	if err == nil {
		view.Exam = &entry
	} else if !errors.Is(err, entities.ErrExamNotFound) {
		s.logger.Warn("Exam annotation failed", "code", course.Code, "error", err)
	}
	return view
}
