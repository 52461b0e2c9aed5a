package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/beyond-imagination/teampage/internal/fixture"
)

type staticSource struct {
	body    string
	fetched int
	fail    bool
}

func (s *staticSource) Fetch(_ context.Context, path string) ([]byte, error) {
	s.fetched++
	if s.fail {
		return nil, &fixture.FetchError{Path: path, Status: 500}
	}
	return []byte(s.body), nil
}

func TestMembersLoadsOnce(t *testing.T) {
	src := &staticSource{body: `[{"id":"m1","name":"Kim","role":"Lead","status":"online","bio":"hi"}]`}
	loader := NewLoader(src)
	ctx := context.Background()

	members, err := loader.Members(ctx)
	if err != nil {
		t.Fatalf("Members err: %v", err)
	}
	if len(members) != 1 || members[0].ID != "m1" {
		t.Fatalf("unexpected roster: %+v", members)
	}

	if _, err := loader.Members(ctx); err != nil {
		t.Fatalf("Members err: %v", err)
	}
	if src.fetched != 1 {
		t.Fatalf("expected one fetch, got %d", src.fetched)
	}
}

func TestRefreshReplacesRoster(t *testing.T) {
	src := &staticSource{body: `[{"id":"m1","name":"Kim","role":"Lead","status":"online","bio":"hi"}]`}
	loader := NewLoader(src)
	ctx := context.Background()

	if _, err := loader.Members(ctx); err != nil {
		t.Fatalf("Members err: %v", err)
	}

	src.body = `[{"id":"m1","name":"Kim","role":"Lead","status":"online","bio":"hi"},` +
		`{"id":"m2","name":"Lee","role":"Dev","status":"offline","bio":"yo"}]`
	if err := loader.Refresh(ctx); err != nil {
		t.Fatalf("Refresh err: %v", err)
	}

	members, err := loader.Members(ctx)
	if err != nil {
		t.Fatalf("Members err: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("roster not replaced: %+v", members)
	}
}

func TestLoadRecordsError(t *testing.T) {
	src := &staticSource{fail: true}
	loader := NewLoader(src)

	_, err := loader.Members(context.Background())
	var fetchErr *fixture.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if loader.Err() == nil {
		t.Fatal("error state not recorded")
	}
}

func TestLoadParseError(t *testing.T) {
	src := &staticSource{body: `{oops`}
	loader := NewLoader(src)

	_, err := loader.Members(context.Background())
	var parseErr *fixture.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
