package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/repository"
)

type MedicationService struct {
	medRepo repository.MedicationRepository
}

func NewMedicationService(medRepo repository.MedicationRepository) *MedicationService {
	return &MedicationService{medRepo: medRepo}
}

type AddMedicationInput struct {
	Name         string
	Dosage       string
	Schedule     string
	CapsulesLeft int
}

// Add appends a medication under the user. All slot flags start unset.
func (s *MedicationService) Add(ctx context.Context, userID uuid.UUID, input AddMedicationInput) (*domain.Medication, error) {
	med := &domain.Medication{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         input.Name,
		Dosage:       input.Dosage,
		Schedule:     input.Schedule,
		CapsulesLeft: input.CapsulesLeft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.medRepo.Create(ctx, med); err != nil {
		return nil, err
	}
	return med, nil
}

func (s *MedicationService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	return s.medRepo.GetByUserID(ctx, userID)
}

// SetSlot sets one named slot on one medication to the given value.
// Re-setting a slot to its current value is a successful no-op.
func (s *MedicationService) SetSlot(ctx context.Context, id uuid.UUID, slotName string, selected bool) error {
	slot, ok := domain.ParseSlot(slotName)
	if !ok {
		return domain.ErrInvalidSlot
	}
	return s.medRepo.SetSlot(ctx, id, slot, selected)
}
