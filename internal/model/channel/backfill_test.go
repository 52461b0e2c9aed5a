package channel

import (
	"reflect"
	"testing"
	"time"
)

func TestBackfillSynthesizesIDs(t *testing.T) {
	rec := &Record{
		ID: "team-intro",
		History: []Message{
			{Content: "one"},
			{ID: "explicit", Content: "two"},
			{Content: "three"},
		},
		Presets: []QuestionPreset{
			{Question: "q1", Answer: "a1"},
			{ID: "p-keep", Question: "q2", Answer: "a2"},
		},
	}

	Backfill(rec, time.Now())

	if rec.History[0].ID != "team-intro-msg-0" {
		t.Fatalf("unexpected id: %s", rec.History[0].ID)
	}
	if rec.History[1].ID != "explicit" {
		t.Fatalf("explicit id overwritten: %s", rec.History[1].ID)
	}
	if rec.History[2].ID != "team-intro-msg-2" {
		t.Fatalf("unexpected id: %s", rec.History[2].ID)
	}
	if rec.Presets[0].ID != "team-intro-preset-0" {
		t.Fatalf("unexpected preset id: %s", rec.Presets[0].ID)
	}
	if rec.Presets[1].ID != "p-keep" {
		t.Fatalf("explicit preset id overwritten: %s", rec.Presets[1].ID)
	}
}

func TestBackfillTimestampsWalkBackwardFromNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	rec := &Record{
		ID:      "news",
		History: []Message{{Content: "a"}, {Content: "b"}, {Content: "c"}},
	}

	Backfill(rec, now)

	want := []string{"2:27 PM", "2:28 PM", "2:30 PM"}
	for i, ts := range want {
		if rec.History[i].Timestamp != ts {
			t.Fatalf("message %d: got %q want %q", i, rec.History[i].Timestamp, ts)
		}
	}
}

func TestBackfillKeepsExplicitTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rec := &Record{
		ID: "news",
		History: []Message{
			{Content: "a", Timestamp: "10:15 AM"},
			{Content: "b"},
		},
	}

	Backfill(rec, now)

	if rec.History[0].Timestamp != "10:15 AM" {
		t.Fatalf("explicit timestamp overwritten: %q", rec.History[0].Timestamp)
	}
	if rec.History[1].Timestamp != "9:00 AM" {
		t.Fatalf("last message should sit at now: %q", rec.History[1].Timestamp)
	}
}

func TestBackfillIdempotent(t *testing.T) {
	rec := &Record{
		ID:      "team-intro",
		History: []Message{{Content: "a"}, {Content: "b"}},
		Presets: []QuestionPreset{{Question: "q", Answer: "a"}},
	}

	Backfill(rec, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC))
	snapshot := *rec
	snapshotHistory := append([]Message(nil), rec.History...)

	// Second pass an hour later must not touch anything.
	Backfill(rec, time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC))

	if !reflect.DeepEqual(rec.History, snapshotHistory) {
		t.Fatalf("second backfill modified history: %+v", rec.History)
	}
	if !reflect.DeepEqual(rec.Presets, snapshot.Presets) {
		t.Fatalf("second backfill modified presets: %+v", rec.Presets)
	}
}

func TestSummarizeDefaultsIcon(t *testing.T) {
	rec := &Record{ID: "c1", Name: "Channel"}
	if got := rec.Summarize().Icon; got != DefaultIcon {
		t.Fatalf("expected default icon, got %q", got)
	}

	rec.Icon = "Megaphone"
	if got := rec.Summarize().Icon; got != "Megaphone" {
		t.Fatalf("explicit icon replaced: %q", got)
	}
}
