package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/model/channel"
	"github.com/beyond-imagination/teampage/internal/telemetry"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrNoPresets       = errors.New("channel does not accept presets")
	ErrBotTyping       = errors.New("bot reply pending for this channel")
)

// botReplyDelay simulates the bot typing before a preset answer lands.
const botReplyDelay = 1500 * time.Millisecond

// Session is the public view of a visitor session.
type Session struct {
	ID          string    `json:"id"`
	VisitorName string    `json:"visitorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Event is pushed to session subscribers whenever a message is appended
// to one of the session's channel buffers.
type Event struct {
	ChannelID string          `json:"channelId"`
	Message   channel.Message `json:"message"`
}

type session struct {
	Session
	// buffers holds the session-local messages appended per channel; each
	// append replaces the slice so readers never see partial state.
	buffers map[string][]channel.Message
	// awaiting marks channels with a bot reply pending, keyed by channel
	// id. Selection is disabled there but other channels are unaffected.
	awaiting map[string]bool
	subs     []chan Event
}

// Service owns visitor sessions: their stable visitor names, per-channel
// session buffers and the preset-response engine. Fetched channel history
// is never mutated; live messages only ever land in session buffers.
type Service struct {
	cat        *catalog.Loader
	replyDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService bootstraps the in-memory session service.
func NewService(cat *catalog.Loader) *Service {
	return &Service{
		cat:        cat,
		replyDelay: botReplyDelay,
		now:        time.Now,
		sessions:   make(map[string]*session),
	}
}

// CreateSession provisions an anonymous visitor session. The visitor
// display name is generated here, once, and reused for the session's
// entire lifetime.
func (s *Service) CreateSession(_ context.Context) (Session, error) {
	sess := &session{
		Session: Session{
			ID:          uuid.NewString(),
			VisitorName: generateVisitorName(),
			CreatedAt:   s.now().UTC(),
		},
		buffers:  make(map[string][]channel.Message),
		awaiting: make(map[string]bool),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.Session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.Session, nil
}

// Transcript returns the channel's fixed history followed by the
// session's buffer for that channel. History is never reordered or
// filtered; session messages always render after it.
func (s *Service) Transcript(ctx context.Context, sessionID, channelID string) ([]channel.Message, error) {
	rec, err := s.cat.LoadChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	buffer := sess.buffers[channelID]
	s.mu.Unlock()

	transcript := make([]channel.Message, 0, len(rec.History)+len(buffer))
	transcript = append(transcript, rec.History...)
	transcript = append(transcript, buffer...)
	return transcript, nil
}

// SelectPreset appends the preset's question as a visitor message, then
// schedules the bot answer after the typing delay. The reply lands on the
// channel that was active at selection time even if the visitor has
// navigated away; nothing ever cancels it.
func (s *Service) SelectPreset(ctx context.Context, sessionID, channelID, presetID string) (channel.Message, error) {
	rec, err := s.cat.LoadChannel(ctx, channelID)
	if err != nil {
		return channel.Message{}, err
	}
	if rec.IsContactForm {
		return channel.Message{}, ErrNoPresets
	}
	preset, ok := rec.Preset(presetID)
	if !ok {
		return channel.Message{}, ErrPresetNotFound
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return channel.Message{}, ErrSessionNotFound
	}
	if sess.awaiting[channelID] {
		s.mu.Unlock()
		return channel.Message{}, ErrBotTyping
	}
	sess.awaiting[channelID] = true
	question := channel.Message{
		ID:        uuid.NewString(),
		Author:    sess.VisitorName,
		Content:   preset.Question,
		Timestamp: s.now().Format(channel.TimestampLayout),
		IsVisitor: true,
	}
	s.appendLocked(sess, channelID, question)
	s.mu.Unlock()

	telemetry.PresetSelections.Inc()

	time.AfterFunc(s.replyDelay, func() {
		answer := channel.Message{
			ID:        uuid.NewString(),
			Author:    "Bot",
			Avatar:    channel.BotAvatar,
			Content:   preset.Answer,
			Image:     preset.Image,
			Images:    preset.Images,
			Timestamp: s.now().Format(channel.TimestampLayout),
			IsBot:     true,
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		sess.awaiting[channelID] = false
		s.appendLocked(sess, channelID, answer)
	})

	return question, nil
}

// AppendVisitorMessage appends a visitor-authored message to the
// session's buffer for the given channel.
func (s *Service) AppendVisitorMessage(_ context.Context, sessionID, channelID, content string) (channel.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return channel.Message{}, ErrSessionNotFound
	}

	msg := channel.Message{
		ID:        uuid.NewString(),
		Author:    sess.VisitorName,
		Content:   content,
		Timestamp: s.now().Format(channel.TimestampLayout),
		IsVisitor: true,
	}
	s.appendLocked(sess, channelID, msg)
	return msg, nil
}

// AppendBotMessage appends a bot-authored message to the session's buffer
// for the given channel.
func (s *Service) AppendBotMessage(_ context.Context, sessionID, channelID, content string) (channel.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return channel.Message{}, ErrSessionNotFound
	}

	msg := channel.Message{
		ID:        uuid.NewString(),
		Author:    "Bot",
		Avatar:    channel.BotAvatar,
		Content:   content,
		Timestamp: s.now().Format(channel.TimestampLayout),
		IsBot:     true,
	}
	s.appendLocked(sess, channelID, msg)
	return msg, nil
}

// Subscribe registers a listener for the session's append events. The
// returned cancel func must be called when the listener goes away.
func (s *Service) Subscribe(sessionID string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan Event, 16)
	sess.subs = append(sess.subs, ch)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range sess.subs {
			if sub == ch {
				sess.subs = append(sess.subs[:i], sess.subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel, nil
}

// appendLocked replaces the channel buffer with a copy holding the new
// message, then notifies subscribers. Callers hold s.mu.
func (s *Service) appendLocked(sess *session, channelID string, msg channel.Message) {
	buffer := sess.buffers[channelID]
	next := make([]channel.Message, len(buffer), len(buffer)+1)
	copy(next, buffer)
	sess.buffers[channelID] = append(next, msg)

	for _, sub := range sess.subs {
		select {
		case sub <- Event{ChannelID: channelID, Message: msg}:
		default:
			// slow subscriber, drop rather than block the append path
		}
	}
}
