package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/fixture"
	contactService "github.com/beyond-imagination/teampage/internal/service/contact"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
)

type mapSource map[string]string

func (m mapSource) Fetch(_ context.Context, path string) ([]byte, error) {
	body, ok := m[path]
	if !ok {
		return nil, &fixture.FetchError{Path: path, Status: 404}
	}
	return []byte(body), nil
}

func setupRouter(t *testing.T) (*chi.Mux, string) {
	t.Helper()
	src := mapSource{
		"channels/contact.json": `{"id":"contact","name":"Contact","history":[],"isContactForm":true}`,
	}
	cat := catalog.NewLoader(src)
	conv := conversation.NewService(cat)
	svc := contactService.NewService(conv, cat, contactService.NopNotifier{})
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	sess, err := conv.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	return r, sess.ID
}

func postContact(r *chi.Mux, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitAccepted(t *testing.T) {
	r, sid := setupRouter(t)

	resp := postContact(r, map[string]string{
		"sessionId": sid,
		"email":     "a@b.com",
		"message":   "hello",
	})
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body)
	}
}

func TestSubmitBadEmail(t *testing.T) {
	r, sid := setupRouter(t)

	resp := postContact(r, map[string]string{
		"sessionId": sid,
		"email":     "bad",
		"message":   "hello",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["reason"] != contactService.ReasonFormat {
		t.Fatalf("unexpected reason: %q", body["reason"])
	}
}

func TestSubmitMissingFields(t *testing.T) {
	r, sid := setupRouter(t)

	resp := postContact(r, map[string]string{
		"sessionId": sid,
		"email":     "",
		"message":   "",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postContact(r, map[string]string{
		"sessionId": "missing",
		"email":     "a@b.com",
		"message":   "hello",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSubmitInvalidBody(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader([]byte("{broken")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
