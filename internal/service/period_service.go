package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/repository"
)

type PeriodService struct {
	periodRepo repository.PeriodRepository
}

func NewPeriodService(periodRepo repository.PeriodRepository) *PeriodService {
	return &PeriodService{periodRepo: periodRepo}
}

// Log records a new cycle start for the user. The previous start date, if
// any, is appended to the history log before being replaced.
func (s *PeriodService) Log(ctx context.Context, userID uuid.UUID, startDate time.Time) (*domain.PeriodCycle, error) {
	history := []string{}

	existing, err := s.periodRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if len(existing.History) > 0 {
			if err := json.Unmarshal(existing.History, &history); err != nil {
				history = nil
			}
		}
		history = append(history, existing.StartDate.Format(time.RFC3339))
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	cycle := &domain.PeriodCycle{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: startDate,
		CycleDays: domain.DefaultCycleDays,
		History:   historyJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.periodRepo.Upsert(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// NextPeriod returns the projected next start date for the user.
func (s *PeriodService) NextPeriod(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	cycle, err := s.periodRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, domain.ErrCycleNotFound
		}
		return time.Time{}, err
	}
	return cycle.NextPeriodDate(), nil
}
