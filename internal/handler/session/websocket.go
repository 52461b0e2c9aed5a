package session

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/beyond-imagination/teampage/internal/model/channel"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// outgoingMessage is the envelope pushed over the session socket.
type outgoingMessage struct {
	Type      string          `json:"type"`
	ChannelID string          `json:"channelId"`
	Message   channel.Message `json:"message"`
	Timestamp int64           `json:"timestamp"`
}

// handleWebSocket streams the session's append events so the page sees
// delayed bot replies without polling. Closing the socket only drops the
// subscription; pending replies still land in the session buffers.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	events, cancel, err := h.conv.Subscribe(sessionID)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Printf("[session] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Reads are only used to observe the peer closing.
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			out := outgoingMessage{
				Type:      "message",
				ChannelID: ev.ChannelID,
				Message:   h.resolver.ResolveMessage(ev.Message),
				Timestamp: time.Now().UnixMilli(),
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(out); err != nil {
				log.Printf("[session] websocket write failed: %v", err)
				return
			}
		}
	}
}
