package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/internal/model/channel"
	"github.com/beyond-imagination/teampage/internal/telemetry"
)

const indexPath = "channels/index.json"

// Loader fetches channel fixtures, backfills missing ids and timestamps on
// first load, and keeps a per-channel cache for the rest of the session.
type Loader struct {
	src fixture.Source
	now func() time.Time

	mu    sync.Mutex
	cache map[string]*channel.Record
}

// NewLoader builds a loader over the given fixture source.
func NewLoader(src fixture.Source) *Loader {
	return &Loader{
		src:   src,
		now:   time.Now,
		cache: make(map[string]*channel.Record),
	}
}

// ListChannelIDs fetches the channel index resource.
func (l *Loader) ListChannelIDs(ctx context.Context) ([]string, error) {
	data, err := l.src.Fetch(ctx, indexPath)
	if err != nil {
		countFixtureError(err)
		return nil, err
	}

	var ids []string
	if err := fixture.DecodeJSON(indexPath, data, &ids); err != nil {
		countFixtureError(err)
		return nil, err
	}
	return ids, nil
}

// LoadChannel returns the cached record for id, fetching, decoding and
// backfilling it on first use. A cache hit returns the exact record that
// was stored, with no re-fetch and no second backfill.
func (l *Loader) LoadChannel(ctx context.Context, id string) (*channel.Record, error) {
	l.mu.Lock()
	if rec, ok := l.cache[id]; ok {
		l.mu.Unlock()
		telemetry.CatalogCacheHits.Inc()
		return rec, nil
	}
	l.mu.Unlock()
	telemetry.CatalogCacheMisses.Inc()

	path := fmt.Sprintf("channels/%s.json", id)
	data, err := l.src.Fetch(ctx, path)
	if err != nil {
		countFixtureError(err)
		return nil, err
	}

	rec := &channel.Record{}
	if err := fixture.DecodeJSON(path, data, rec); err != nil {
		countFixtureError(err)
		return nil, err
	}
	channel.Backfill(rec, l.now())

	// A refresh may have raced this load; last writer wins either way,
	// the session only ever sees fully backfilled records.
	l.mu.Lock()
	l.cache[id] = rec
	l.mu.Unlock()
	return rec, nil
}

// ListSummaries loads every channel and returns its sidebar projection,
// ordered ascending by sort order. Ties keep their index order.
func (l *Loader) ListSummaries(ctx context.Context) ([]channel.Summary, error) {
	ids, err := l.ListChannelIDs(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]channel.Summary, 0, len(ids))
	for _, id := range ids {
		rec, err := l.LoadChannel(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, rec.Summarize())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Order < summaries[j].Order
	})
	return summaries, nil
}

// Refresh drops the entire per-channel cache. Loads already in flight are
// not cancelled; their results repopulate the cache when they land.
func (l *Loader) Refresh() {
	l.mu.Lock()
	l.cache = make(map[string]*channel.Record)
	l.mu.Unlock()
}

func countFixtureError(err error) {
	var parseErr *fixture.ParseError
	if errors.As(err, &parseErr) {
		telemetry.FixtureErrors.WithLabelValues("parse").Inc()
		return
	}
	telemetry.FixtureErrors.WithLabelValues("fetch").Inc()
}
