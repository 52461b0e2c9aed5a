package session

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beyond-imagination/teampage/internal/assets"
	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

// Handler serves visitor sessions: creation, per-channel transcripts and
// preset selection.
type Handler struct {
	conv     *conversation.Service
	resolver *assets.Resolver
}

// New creates the session handler.
func New(conv *conversation.Service, resolver *assets.Resolver) *Handler {
	return &Handler{conv: conv, resolver: resolver}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreate)
	r.Get("/sessions/{sessionID}/channels/{channelID}/messages", h.handleTranscript)
	r.Post("/sessions/{sessionID}/channels/{channelID}/presets/{presetID}", h.handleSelectPreset)
	r.Get("/sessions/{sessionID}/ws", h.handleWebSocket)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.conv.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, sess)
}

// handleTranscript returns channel history followed by the session's live
// messages for that channel.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	channelID := chi.URLParam(r, "channelID")

	transcript, err := h.conv.Transcript(r.Context(), sessionID, channelID)
	if err != nil {
		respondConversationError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.resolver.ResolveMessages(transcript))
}

// handleSelectPreset triggers the preset-response engine. The question
// message is returned immediately; the bot answer follows over the
// session socket after the typing delay.
func (h *Handler) handleSelectPreset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	channelID := chi.URLParam(r, "channelID")
	presetID := chi.URLParam(r, "presetID")

	question, err := h.conv.SelectPreset(r.Context(), sessionID, channelID, presetID)
	if err != nil {
		respondConversationError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, h.resolver.ResolveMessage(question))
}

func respondConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, conversation.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, conversation.ErrPresetNotFound):
		utils.RespondError(w, http.StatusNotFound, "preset not found")
	case errors.Is(err, conversation.ErrNoPresets):
		utils.RespondError(w, http.StatusBadRequest, "channel does not accept presets")
	case errors.Is(err, conversation.ErrBotTyping):
		utils.RespondError(w, http.StatusConflict, "bot reply pending")
	default:
		var fetchErr *fixture.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound {
			utils.RespondError(w, http.StatusNotFound, "channel not found")
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "failed to load channel")
	}
}
