package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/internal/service/contact"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

// Handler serves contact form submissions.
type Handler struct {
	svc *contact.Service
}

// New creates the contact handler.
func New(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the contact route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		ChannelID string `json:"channelId"`
		Email     string `json:"email"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ChannelID == "" {
		payload.ChannelID = "contact"
	}

	err := h.svc.Submit(r.Context(), payload.SessionID, payload.ChannelID, payload.Email, payload.Message)
	if err != nil {
		respondSubmitError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func respondSubmitError(w http.ResponseWriter, err error) {
	var valErr *contact.ValidationError
	if errors.As(err, &valErr) {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  valErr.Error(),
			"reason": valErr.Reason,
		})
		return
	}

	var subErr *contact.SubmissionError
	if errors.As(err, &subErr) {
		utils.RespondError(w, http.StatusBadGateway, "failed to deliver inquiry")
		return
	}

	if errors.Is(err, conversation.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	var fetchErr *fixture.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound {
		utils.RespondError(w, http.StatusNotFound, "channel not found")
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
