package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/satyam/medicare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, med *domain.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Medication, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error)
	// SetSlot writes a single slot flag directly; setting a slot to its
	// current value is a successful no-op.
	SetSlot(ctx context.Context, id uuid.UUID, slot domain.Slot, selected bool) error
}

type PeriodRepository interface {
	Upsert(ctx context.Context, cycle *domain.PeriodCycle) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PeriodCycle, error)
}

type Repositories struct {
	User       UserRepository
	Medication MedicationRepository
	Period     PeriodRepository
}
