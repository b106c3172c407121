package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/satyam/medicare-backend/internal/api/middleware"
	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/service"
)

type PeriodHandler struct {
	periodService *service.PeriodService
}

func NewPeriodHandler(periodService *service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

type SetPeriodRequest struct {
	StartDate string `json:"startDate"`
}

type NextPeriodResponse struct {
	NextPeriodDate string `json:"nextPeriodDate"`
}

// SetPeriod logs a cycle start date and returns the projected next one.
func (h *PeriodHandler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SetPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "startDate must be an ISO timestamp")
		return
	}

	cycle, err := h.periodService.Log(r.Context(), userID, startDate)
	if err != nil {
		log.Printf("ERROR [period.SetPeriod] failed to log period: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to log period")
		return
	}

	respondJSON(w, http.StatusOK, NextPeriodResponse{
		NextPeriodDate: cycle.NextPeriodDate().Format(time.RFC3339),
	})
}

// GetNextPeriod returns the projected next cycle start for the caller.
func (h *PeriodHandler) GetNextPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	next, err := h.periodService.NextPeriod(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrCycleNotFound) {
			respondMessage(w, http.StatusNotFound, "No period logged yet")
			return
		}
		log.Printf("ERROR [period.GetNextPeriod] failed to fetch next period: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch next period")
		return
	}

	respondJSON(w, http.StatusOK, NextPeriodResponse{
		NextPeriodDate: next.Format(time.RFC3339),
	})
}
