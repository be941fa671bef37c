package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// inboundMessage is one message in the inbound request.
type inboundMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// messageRequest is the inbound turn payload.
type messageRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             inboundMessage   `json:"message"`
	ConversationHistory []inboundMessage `json:"conversationHistory,omitempty"`
	Metadata            *messageMetadata `json:"metadata,omitempty"`
}

type messageMetadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// messageResponse is the reply payload.
type messageResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// sessionResponse is the inspection payload for one session.
type sessionResponse struct {
	SessionID    string             `json:"sessionId"`
	State        string             `json:"state"`
	ScamDetected bool               `json:"scamDetected"`
	Confidence   float64            `json:"confidence"`
	Category     *string            `json:"scamType"`
	TurnCount    int                `json:"turnCount"`
	Reported     bool               `json:"reported"`
	Indicators   core.Indicators    `json:"extractedIntelligence"`
	History      []core.TurnMessage `json:"conversationHistory"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// handleMessage handles POST /api/message, the main honeypot turn.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	reply, err := s.service.ProcessTurn(r.Context(), req.SessionID, req.Message.Text)
	if err != nil {
		s.logger.Error("Failed to process turn",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Status: "success",
		Reply:  reply,
	})
}

// handleGetSession handles GET /api/session/{sessionID}.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	status, err := s.service.Status(sessionID)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	resp := sessionResponse{
		SessionID:    status.ConversationID,
		State:        status.State.String(),
		ScamDetected: status.ScamDetected,
		Confidence:   status.Confidence,
		TurnCount:    status.TurnCount,
		Reported:     status.Reported,
		Indicators:   status.Indicators,
		History:      status.History,
		CreatedAt:    status.CreatedAt,
	}
	if status.ScamDetected {
		category := status.Category.String()
		resp.Category = &category
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteSession handles DELETE /api/session/{sessionID}.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !s.service.DeleteSession(sessionID) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// handleFlushSession handles POST /api/session/{sessionID}/flush, the manual
// flush trigger.
func (s *Server) handleFlushSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.service.TriggerFlush(r.Context(), sessionID); err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		s.logger.Error("Manual flush failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "Flush failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Report sent to collector",
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "llm-scam-honeypot",
		"sessions":  s.service.SessionCount(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Error: message})
}
