package channel

import (
	"fmt"
	"time"
)

// backfillStep is the simulated gap between consecutive history messages
// when their fixtures carry no timestamps.
const backfillStep = 90 * time.Second

// TimestampLayout renders display timestamps as a 12-hour clock with
// period, matching the timestamps authored in the channel fixtures.
const TimestampLayout = "3:04 PM"

// Backfill fills in missing message/preset identifiers and missing display
// timestamps on a freshly decoded record. Identifiers follow the
// {channelId}-msg-{index} / {channelId}-preset-{index} shape from the
// message's zero-based position. Timestamps are synthesized by treating the
// last history message as occurring at now and walking backward one step
// per message. Explicit values are never overwritten, so running Backfill
// again on the same record is a no-op.
func Backfill(rec *Record, now time.Time) {
	last := len(rec.History) - 1
	for i := range rec.History {
		msg := &rec.History[i]
		if msg.ID == "" {
			msg.ID = fmt.Sprintf("%s-msg-%d", rec.ID, i)
		}
		if msg.Timestamp == "" {
			at := now.Add(-time.Duration(last-i) * backfillStep)
			msg.Timestamp = at.Format(TimestampLayout)
		}
	}
	for i := range rec.Presets {
		if rec.Presets[i].ID == "" {
			rec.Presets[i].ID = fmt.Sprintf("%s-preset-%d", rec.ID, i)
		}
	}
}
