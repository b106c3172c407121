package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/satyam/medicare-backend/internal/domain"
)

// slotColumns whitelists the slot-name → column mapping; SetSlot must never
// interpolate caller input into SQL.
var slotColumns = map[domain.Slot]string{
	domain.SlotMorning: "morning",
	domain.SlotEvening: "evening",
	domain.SlotNight:   "night",
}

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) *medicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, med *domain.Medication) error {
	return r.db.WithContext(ctx).Create(med).Error
}

func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Medication, error) {
	var med domain.Medication
	err := r.db.WithContext(ctx).First(&med, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	var meds []*domain.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meds).Error
	if err != nil {
		return nil, err
	}
	return meds, nil
}

// SetSlot writes exactly one slot column on one row. A single-column UPDATE
// is atomic per record, so concurrent calls on different slots of the same
// medication both apply with no lost update.
func (r *medicationRepository) SetSlot(ctx context.Context, id uuid.UUID, slot domain.Slot, selected bool) error {
	column, ok := slotColumns[slot]
	if !ok {
		return domain.ErrInvalidSlot
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Medication{}).
		Where("id = ?", id).
		Update(column, selected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}
