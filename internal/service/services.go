package service

import (
	"github.com/satyam/medicare-backend/internal/config"
	"github.com/satyam/medicare-backend/internal/llm"
	"github.com/satyam/medicare-backend/internal/metrics"
	"github.com/satyam/medicare-backend/internal/repository"
	"github.com/satyam/medicare-backend/internal/session"
	"github.com/satyam/medicare-backend/internal/token"
)

type Services struct {
	Auth       *AuthService
	Triage     *TriageService
	Medication *MedicationService
	Period     *PeriodService
}

func NewServices(repos *repository.Repositories, tokens *token.Manager, llmClient llm.Client, sessions *session.Registry, recorder metrics.Recorder, cfg *config.Config) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, tokens),
		Triage:     NewTriageService(llmClient, sessions, recorder, cfg.TriageTimeout),
		Medication: NewMedicationService(repos.Medication),
		Period:     NewPeriodService(repos.Period),
	}
}
