package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the fixture pipeline and visitor interactions, exported on
// /metrics via promhttp.
var (
	CatalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teampage_catalog_cache_hits_total",
		Help: "Channel loads served from the per-session cache.",
	})

	CatalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teampage_catalog_cache_misses_total",
		Help: "Channel loads that required a fixture fetch.",
	})

	FixtureErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teampage_fixture_errors_total",
		Help: "Fixture loads that failed, by kind (fetch or parse).",
	}, []string{"kind"})

	PresetSelections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teampage_preset_selections_total",
		Help: "Question presets selected by visitors.",
	})

	ContactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teampage_contact_submissions_total",
		Help: "Contact form submissions, by outcome (accepted, rejected or failed).",
	}, []string{"outcome"})
)
