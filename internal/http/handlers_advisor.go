package http

import (
	"encoding/json"
	"net/http"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type feedbackRequest struct {
	RecommendationID int64  `json:"recommendationId"`
	Feedback         string `json:"feedback"`
	Notes            string `json:"notes"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.advisor.Recommendations(r.Context())
	if err != nil {
		respondServiceError(r.Context(), w, err, "Not found", "Database error")
		return
	}

	respond(w, http.StatusOK, recs)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	reply, err := s.advisor.Chat(r.Context(), req.Message, req.SessionID)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Not found", "Failed to process chat message")
		return
	}

	respond(w, http.StatusOK, reply)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.advisor.Insights(r.Context())
	if err != nil {
		respondServiceError(r.Context(), w, err, "Not found", "Failed to generate insights")
		return
	}

	respond(w, http.StatusOK, insights)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	ack, err := s.advisor.Feedback(r.Context(), req.RecommendationID, req.Feedback, req.Notes)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Not found", "Failed to record feedback")
		return
	}

	respond(w, http.StatusOK, ack)
}
