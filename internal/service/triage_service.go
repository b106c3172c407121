package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/llm"
	"github.com/satyam/medicare-backend/internal/metrics"
	"github.com/satyam/medicare-backend/internal/session"
)

// greetingPattern matches a small fixed vocabulary as whole words,
// case-insensitively.
var greetingPattern = regexp.MustCompile(`(?i)\b(hello|hi|hey|greetings)\b`)

const triageSystemPrompt = "You are a structured clinical triage assistant for the Medicare health app. " +
	"The patient will describe their symptoms. Ask at most two short clarifying questions if the description is unclear. " +
	"Then answer in exactly three sections: 1) Possible diagnosis, 2) Suggested medications, 3) Lifestyle advice. " +
	"Keep the language simple and remind the patient to consult a doctor for anything serious."

// TriageService runs one symptom-intake turn at a time. The only state it
// keeps across turns is the per-session greeted flag; every model-bound turn
// is otherwise stateless with respect to prior turns.
type TriageService struct {
	llm      llm.Client
	sessions *session.Registry
	recorder metrics.Recorder
	timeout  time.Duration
}

func NewTriageService(client llm.Client, sessions *session.Registry, recorder metrics.Recorder, timeout time.Duration) *TriageService {
	return &TriageService{
		llm:      client,
		sessions: sessions,
		recorder: recorder,
		timeout:  timeout,
	}
}

// Respond handles one triage turn for the caller identified by username.
//
// The first greeting turn of a session is answered directly, without the
// model. Every other turn goes to the model under a bounded timeout; on
// failure or timeout the caller gets domain.ErrUpstream rather than a hang.
func (s *TriageService) Respond(ctx context.Context, username, symptoms string) (string, error) {
	start := time.Now()
	defer func() { s.recorder.RecordTriageLatency(time.Since(start)) }()

	if greetingPattern.MatchString(symptoms) && s.sessions.MarkGreeted(username) {
		s.recorder.RecordTriageTurn(true)
		return fmt.Sprintf("Hello %s! I'm your AI health assistant. Please describe your symptoms and I'll do my best to help.", username), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: triageSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Patient name: %s\n\nSymptoms: %s", username, symptoms)},
	})
	if err != nil {
		s.recorder.RecordUpstreamFailure()
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	s.recorder.RecordTriageTurn(false)
	return reply, nil
}
