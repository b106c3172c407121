package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/satyam/medicare-backend/internal/service"
)

const maxTriageFormSize = 1 << 20 // the client may attach an image part; cap it

type TriageHandler struct {
	triageService *service.TriageService
}

func NewTriageHandler(triageService *service.TriageService) *TriageHandler {
	return &TriageHandler{triageService: triageService}
}

type TriageRequest struct {
	Symptoms string `json:"symptoms"`
	Username string `json:"username"`
}

type TriageResponse struct {
	Response string `json:"response"`
}

// GenerateResponse handles one triage turn. The chat screen posts
// multipart/form-data while other clients send JSON; both are accepted.
// Identity comes from the username body field, not a token — the chat flow
// is unauthenticated by (preserved) design.
func (h *TriageHandler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTriageRequest(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Symptoms == "" {
		respondMessage(w, http.StatusBadRequest, "Symptoms are required")
		return
	}

	reply, err := h.triageService.Respond(r.Context(), req.Username, req.Symptoms)
	if err != nil {
		log.Printf("ERROR [triage.GenerateResponse] failed to generate response: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error generating response")
		return
	}

	respondJSON(w, http.StatusOK, TriageResponse{Response: reply})
}

func decodeTriageRequest(r *http.Request) (*TriageRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxTriageFormSize); err != nil {
			return nil, err
		}
		return &TriageRequest{
			Symptoms: r.FormValue("symptoms"),
			Username: r.FormValue("username"),
		}, nil
	}

	var req TriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
