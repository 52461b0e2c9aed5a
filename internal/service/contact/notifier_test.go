package contact

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSlackNotifierPostsBlocks(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	if err := n.Notify(context.Background(), "a@b.com", "hello there"); err != nil {
		t.Fatalf("Notify err: %v", err)
	}

	var payload struct {
		Text   string `json:"text"`
		Blocks []struct {
			Type string `json:"type"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("webhook body not JSON: %v\n%s", err, body)
	}
	if len(payload.Blocks) != 3 {
		t.Fatalf("expected header + fields + body blocks, got %d", len(payload.Blocks))
	}
	if payload.Blocks[0].Type != "header" {
		t.Fatalf("first block should be the header, got %q", payload.Blocks[0].Type)
	}
	if !strings.Contains(string(body), "a@b.com") || !strings.Contains(string(body), "hello there") {
		t.Fatalf("webhook body missing submission fields: %s", body)
	}
}

func TestSlackNotifierWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	if err := n.Notify(context.Background(), "a@b.com", "hello"); err == nil {
		t.Fatal("expected error for failing webhook")
	}
}

func TestNopNotifier(t *testing.T) {
	if err := (NopNotifier{}).Notify(context.Background(), "a@b.com", "hello"); err != nil {
		t.Fatalf("NopNotifier should always succeed: %v", err)
	}
}
