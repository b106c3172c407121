package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/satyam/medicare-backend/internal/domain"
)

type periodRepository struct {
	db *gorm.DB
}

func NewPeriodRepository(db *gorm.DB) *periodRepository {
	return &periodRepository{db: db}
}

// Upsert keeps one cycle row per user: a repeat log replaces the start date
// and history in place.
func (r *periodRepository) Upsert(ctx context.Context, cycle *domain.PeriodCycle) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_date", "cycle_days", "history", "updated_at"}),
		}).
		Create(cycle).Error
}

func (r *periodRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PeriodCycle, error) {
	var cycle domain.PeriodCycle
	err := r.db.WithContext(ctx).First(&cycle, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}
