package channel

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beyond-imagination/teampage/internal/assets"
	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

// Handler serves the channel catalog.
type Handler struct {
	cat      *catalog.Loader
	resolver *assets.Resolver
}

// New creates the channel handler.
func New(cat *catalog.Loader, resolver *assets.Resolver) *Handler {
	return &Handler{cat: cat, resolver: resolver}
}

// RegisterRoutes registers the channel routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/channels", h.handleList)
	r.Get("/channels/{channelID}", h.handleGet)
}

// handleList returns the sidebar summaries, sorted by channel order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.cat.ListSummaries(r.Context())
	if err != nil {
		utils.RespondError(w, fixtureStatus(err), "failed to load channels")
		return
	}
	utils.RespondJSON(w, http.StatusOK, summaries)
}

// handleGet returns one backfilled channel record with asset references
// resolved for the deployment.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")

	rec, err := h.cat.LoadChannel(r.Context(), channelID)
	if err != nil {
		utils.RespondError(w, fixtureStatus(err), "failed to load channel")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.resolver.ResolveRecord(rec))
}

// fixtureStatus maps loader errors onto response codes: a missing fixture
// is the caller's 404, anything else is an upstream failure.
func fixtureStatus(err error) int {
	var fetchErr *fixture.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
