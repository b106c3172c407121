package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/satyam/medicare-backend/internal/api/middleware"
	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/service"
)

type MedicationHandler struct {
	medicationService *service.MedicationService
}

func NewMedicationHandler(medicationService *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type AddMedicineRequest struct {
	Name         string         `json:"name"`
	Dosage       string         `json:"dosage"`
	Schedule     string         `json:"schedule"`
	CapsulesLeft domain.FlexInt `json:"capsulesLeft"`
}

type UpdateTimeRequest struct {
	Time     string `json:"time"`
	Selected bool   `json:"selected"`
}

// List returns all of the caller's medications in insertion order.
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	meds, err := h.medicationService.List(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [medication.List] failed to list medications: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch medications")
		return
	}

	respondJSON(w, http.StatusOK, meds)
}

// Add creates a new medication record under the caller.
func (h *MedicationHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Medicine name is required")
		return
	}

	med, err := h.medicationService.Add(r.Context(), userID, service.AddMedicationInput{
		Name:         req.Name,
		Dosage:       req.Dosage,
		Schedule:     req.Schedule,
		CapsulesLeft: int(req.CapsulesLeft),
	})
	if err != nil {
		log.Printf("ERROR [medication.Add] failed to add medicine: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to add medicine")
		return
	}

	respondJSON(w, http.StatusCreated, med)
}

// UpdateTime sets one time slot of one medication to the requested value.
// Setting an already-set slot to the same value succeeds.
func (h *MedicationHandler) UpdateTime(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid medication id")
		return
	}

	var req UpdateTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.medicationService.SetSlot(r.Context(), id, req.Time, req.Selected)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSlot):
			respondMessage(w, http.StatusBadRequest, "Invalid medication time slot")
		case errors.Is(err, domain.ErrMedicationNotFound):
			respondMessage(w, http.StatusNotFound, "Medication not found")
		default:
			log.Printf("ERROR [medication.UpdateTime] failed to update slot: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update medication time")
		}
		return
	}

	respondMessage(w, http.StatusOK, "Medication time updated")
}
