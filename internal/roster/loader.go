package roster

import (
	"context"
	"sync"

	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/internal/model/member"
)

const rosterPath = "members.json"

// Loader fetches the team roster and exposes the last load's outcome. A
// refresh replaces the whole roster atomically; a failed refresh keeps the
// previous roster and records the error.
type Loader struct {
	src fixture.Source

	mu      sync.RWMutex
	members []member.Member
	loaded  bool
	err     error
}

// NewLoader builds a roster loader over the given fixture source.
func NewLoader(src fixture.Source) *Loader {
	return &Loader{src: src}
}

// Load fetches and decodes the roster, replacing it wholesale on success.
func (l *Loader) Load(ctx context.Context) ([]member.Member, error) {
	data, err := l.src.Fetch(ctx, rosterPath)
	if err != nil {
		l.record(nil, err)
		return nil, err
	}

	var members []member.Member
	if err := fixture.DecodeJSON(rosterPath, data, &members); err != nil {
		l.record(nil, err)
		return nil, err
	}

	l.record(members, nil)
	return members, nil
}

// Members returns the roster, loading it on first use.
func (l *Loader) Members(ctx context.Context) ([]member.Member, error) {
	l.mu.RLock()
	if l.loaded {
		members := l.members
		l.mu.RUnlock()
		return members, nil
	}
	l.mu.RUnlock()
	return l.Load(ctx)
}

// Err reports the error recorded by the most recent load, if any.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Refresh re-issues the fetch, dropping the loaded state first so the
// next read always reflects the new fixture.
func (l *Loader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.loaded = false
	l.mu.Unlock()
	_, err := l.Load(ctx)
	return err
}

func (l *Loader) record(members []member.Member, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
	if err == nil {
		l.members = members
		l.loaded = true
	}
}
