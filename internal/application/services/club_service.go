package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// ClubService fronts the clubs backend. Listing degrades to a cached or
// bundled static dataset when the backend fails or returns nothing; write
// operations never fall back. A per-club in-flight guard rejects a second
// concurrent mutation for the same club while letting different clubs
// proceed.
type ClubService struct {
	directory ports.ClubDirectory
	fallback  []entities.Club
	logger    *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
	cached   []entities.Club
}

// NewClubService creates a new club service. fallback is the bundled static
// dataset served when the backend is unreachable.
func NewClubService(directory ports.ClubDirectory, fallback []entities.Club, logger *logger.Logger) *ClubService {
	return &ClubService{
		directory: directory,
		fallback:  fallback,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

// List pages the club directory. On backend failure or an empty result the
// cached directory (or the bundled dataset) is filtered and paged locally,
// and the page is marked as fallback.
func (s *ClubService) List(ctx context.Context, filter ports.ClubFilter) (*ports.ClubPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	clubs, total, err := s.directory.List(ctx, filter)
	if err == nil && len(clubs) > 0 {
		return &ports.ClubPage{Clubs: clubs, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
	}
	if err != nil {
		s.logger.Warn("Club directory fetch failed, serving fallback", "error", err)
	}

	local := s.localDirectory()
	matched := filterClubs(local, filter)
	page := pageClubs(matched, filter)

	return &ports.ClubPage{
		Clubs:    page,
		Total:    len(matched),
		Limit:    filter.Limit,
		Offset:   filter.Offset,
		Fallback: true,
	}, nil
}

// Memberships returns the user's club memberships with sync flags.
func (s *ClubService) Memberships(ctx context.Context, userID string) ([]entities.ClubMembership, error) {
	memberships, err := s.directory.Memberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	return memberships, nil
}

// Join adds the user to a club.
func (s *ClubService) Join(ctx context.Context, userID, clubID string) error {
	return s.guarded(userID, clubID, func() error {
		if err := s.directory.Join(ctx, userID, clubID); err != nil {
			return fmt.Errorf("failed to join club: %w", err)
		}
		s.logger.Info("Joined club", "user_id", userID, "club_id", clubID)
		return nil
	})
}

// Leave removes the user from a club.
func (s *ClubService) Leave(ctx context.Context, userID, clubID string) error {
	return s.guarded(userID, clubID, func() error {
		if err := s.directory.Leave(ctx, userID, clubID); err != nil {
			return fmt.Errorf("failed to leave club: %w", err)
		}
		s.logger.Info("Left club", "user_id", userID, "club_id", clubID)
		return nil
	})
}

// SetCalendarSync toggles occurrence generation for one membership.
func (s *ClubService) SetCalendarSync(ctx context.Context, userID, clubID string, synced bool) error {
	return s.guarded(userID, clubID, func() error {
		if err := s.directory.SetCalendarSync(ctx, userID, clubID, synced); err != nil {
			return fmt.Errorf("failed to toggle calendar sync: %w", err)
		}
		s.logger.Info("Calendar sync toggled", "user_id", userID, "club_id", clubID, "synced", synced)
		return nil
	})
}

// Submit proposes a new club. A duplicate submission surfaces as
// entities.ErrSubmissionExists, an informational outcome rather than a
// failure.
func (s *ClubService) Submit(ctx context.Context, req ports.SubmitClubRequest) error {
	err := s.directory.Submit(ctx, entities.ClubSubmission{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		MeetingSchedule: req.MeetingSchedule,
		ContactEmail:    req.ContactEmail,
	})
	if errors.Is(err, entities.ErrSubmissionExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to submit club: %w", err)
	}
	s.logger.Info("Club submitted", "name", req.Name)
	return nil
}

// RefreshDirectory re-fetches the full club list into the local cache so
// the fallback stays warm; run periodically by the server's cron job.
func (s *ClubService) RefreshDirectory(ctx context.Context) error {
	clubs, _, err := s.directory.List(ctx, ports.ClubFilter{Limit: 500})
	if err != nil {
		return fmt.Errorf("failed to refresh club directory: %w", err)
	}
	if len(clubs) == 0 {
		return nil
	}

	s.mu.Lock()
	s.cached = clubs
	s.mu.Unlock()

	s.logger.Info("Club directory refreshed", "count", len(clubs))
	return nil
}

// guarded runs fn unless another operation for the same user+club is still
// in flight.
func (s *ClubService) guarded(userID, clubID string, fn func() error) error {
	key := userID + "/" + clubID

	s.mu.Lock()
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		return entities.ErrOperationInFlight
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	return fn()
}

func (s *ClubService) localDirectory() []entities.Club {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cached) > 0 {
		return s.cached
	}
	return s.fallback
}

func filterClubs(clubs []entities.Club, filter ports.ClubFilter) []entities.Club {
	out := make([]entities.Club, 0, len(clubs))
	for _, c := range clubs {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !containsFold(c.Name, filter.Search) && !containsFold(c.Description, filter.Search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func pageClubs(clubs []entities.Club, filter ports.ClubFilter) []entities.Club {
	if filter.Offset >= len(clubs) {
		return []entities.Club{}
	}
	end := filter.Offset + filter.Limit
	if end > len(clubs) {
		end = len(clubs)
	}
	return clubs[filter.Offset:end]
}
