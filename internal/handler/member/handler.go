package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beyond-imagination/teampage/internal/assets"
	model "github.com/beyond-imagination/teampage/internal/model/member"
	"github.com/beyond-imagination/teampage/internal/roster"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

// Handler serves the team roster.
type Handler struct {
	roster   *roster.Loader
	resolver *assets.Resolver
}

// New creates the member handler.
func New(loader *roster.Loader, resolver *assets.Resolver) *Handler {
	return &Handler{roster: loader, resolver: resolver}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.roster.Members(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to load members")
		return
	}

	resolved := make([]model.Member, len(members))
	for i, m := range members {
		resolved[i] = h.resolver.ResolveMember(m)
	}
	utils.RespondJSON(w, http.StatusOK, resolved)
}
