package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// Notifier forwards an accepted submission to whatever downstream channel
// the team watches. Implementations must treat delivery as best-effort
// notification, not as the system of record.
type Notifier interface {
	Notify(ctx context.Context, email, message string) error
}

// SlackNotifier posts submissions to a Slack incoming webhook as a
// block-kit message: a header, a two-field section with the sender's email
// and the local receipt time, and the message body.
type SlackNotifier struct {
	webhookURL string
	now        func() time.Time
}

// NewSlackNotifier builds a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL, now: time.Now}
}

// Notify posts the webhook message.
func (n *SlackNotifier) Notify(ctx context.Context, email, message string) error {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":bell: New inquiry", true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Email:*\n%s", email), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Time:*\n%s", n.now().Format("2006-01-02 15:04:05")), false, false),
		}, nil),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Message:*\n%s", message), false, false),
			nil, nil,
		),
	}

	return slack.PostWebhookContext(ctx, n.webhookURL, &slack.WebhookMessage{
		Text:   "A new inquiry has been received",
		Blocks: &slack.Blocks{BlockSet: blocks},
	})
}

// NopNotifier is used when no webhook is configured: submissions still
// succeed, they just are not forwarded anywhere.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string) error { return nil }
