package contact

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
	"github.com/beyond-imagination/teampage/internal/telemetry"
)

// Validation failure reasons.
const (
	ReasonRequired = "required"
	ReasonFormat   = "format"
)

// ackDelay is the pause before the bot acknowledgment appears in-channel.
const ackDelay = 500 * time.Millisecond

const ackMessage = "Your inquiry has been sent. We will get back to you as soon as possible. Thank you!"

// Single @, dotted domain, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports bad contact input. No side effects occur for a
// failed validation; the visitor can correct and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SubmissionError reports a relay call that failed after validation
// passed. The in-channel echo stays visible regardless.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("contact relay failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Service validates contact submissions, echoes them into the contact
// channel, and relays them to the configured notifier.
type Service struct {
	conv     *conversation.Service
	cat      *catalog.Loader
	notifier Notifier
	delay    time.Duration
}

// NewService wires the submission pipeline.
func NewService(conv *conversation.Service, cat *catalog.Loader, notifier Notifier) *Service {
	return &Service{conv: conv, cat: cat, notifier: notifier, delay: ackDelay}
}

// Submit runs validation, appends the in-channel echo, relays the
// submission, and schedules the bot acknowledgment. The echo is appended
// before the relay call and is never rolled back: the relay is
// best-effort notification infrastructure, not the system of record.
func (s *Service) Submit(ctx context.Context, sessionID, channelID, email, message string) error {
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if email == "" || message == "" {
		telemetry.ContactSubmissions.WithLabelValues("rejected").Inc()
		return &ValidationError{Field: "email/message", Reason: ReasonRequired}
	}
	if !emailPattern.MatchString(email) {
		telemetry.ContactSubmissions.WithLabelValues("rejected").Inc()
		return &ValidationError{Field: "email", Reason: ReasonFormat}
	}

	rec, err := s.cat.LoadChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if !rec.IsContactForm {
		return &ValidationError{Field: "channel", Reason: "not a contact channel"}
	}

	echo := fmt.Sprintf("Email: %s\n\n%s", email, message)
	if _, err := s.conv.AppendVisitorMessage(ctx, sessionID, channelID, echo); err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, email, message); err != nil {
		telemetry.ContactSubmissions.WithLabelValues("failed").Inc()
		return &SubmissionError{Err: err}
	}
	telemetry.ContactSubmissions.WithLabelValues("accepted").Inc()

	time.AfterFunc(s.delay, func() {
		if _, err := s.conv.AppendBotMessage(context.Background(), sessionID, channelID, ackMessage); err != nil {
			log.Printf("[contact] failed to append acknowledgment: %v", err)
		}
	})
	return nil
}
