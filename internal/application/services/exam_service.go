package services

import (
	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/domain/examtable"
	"github.com/campusboard/core/internal/infrastructure/logger"
)

// ExamService resolves course codes against the static exam table. A miss
// is a first-class outcome (entities.ErrExamNotFound), not a failure.
type ExamService struct {
	table  *examtable.Table
	logger *logger.Logger
}

// NewExamService creates a new exam service.
func NewExamService(table *examtable.Table, logger *logger.Logger) *ExamService {
	return &ExamService{table: table, logger: logger}
}

// Lookup resolves a course code through the normalization fallback chain.
func (s *ExamService) Lookup(code string) (entities.ExamEntry, error) {
	entry, err := s.table.Lookup(code)
	if err != nil {
		s.logger.Debug("Exam lookup miss", "code", code)
		return entities.ExamEntry{}, err
	}
	return entry, nil
}
