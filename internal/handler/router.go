package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beyond-imagination/teampage/internal/assets"
	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/config"
	channelHandler "github.com/beyond-imagination/teampage/internal/handler/channel"
	contactHandler "github.com/beyond-imagination/teampage/internal/handler/contact"
	memberHandler "github.com/beyond-imagination/teampage/internal/handler/member"
	sessionHandler "github.com/beyond-imagination/teampage/internal/handler/session"
	middlewarePkg "github.com/beyond-imagination/teampage/internal/middleware"
	"github.com/beyond-imagination/teampage/internal/roster"
	contactService "github.com/beyond-imagination/teampage/internal/service/contact"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
	"github.com/beyond-imagination/teampage/pkg/utils"
)

// NewRouter wires HTTP routes to core services and mounts the static
// fixture tree under the deployment base path.
func NewRouter(
	cfg *config.Config,
	cat *catalog.Loader,
	rosterLoader *roster.Loader,
	convSvc *conversation.Service,
	contactSvc *contactService.Service,
	resolver *assets.Resolver,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	channelH := channelHandler.New(cat, resolver)
	memberH := memberHandler.New(rosterLoader, resolver)
	sessionH := sessionHandler.New(convSvc, resolver)
	contactH := contactHandler.New(contactSvc)

	r.Route("/api", func(api chi.Router) {
		channelH.RegisterRoutes(api)
		memberH.RegisterRoutes(api)
		sessionH.RegisterRoutes(api)

		api.Group(func(g chi.Router) {
			g.Use(middlewarePkg.RateLimit(cfg.Relay.RPS, cfg.Relay.Burst))
			contactH.RegisterRoutes(g)
		})

		// Refresh drops the channel cache and re-issues the index and
		// roster fetches. In-flight channel loads are not cancelled.
		api.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
			cat.Refresh()
			if _, err := cat.ListChannelIDs(r.Context()); err != nil {
				log.Printf("[catalog] refresh: index fetch failed: %v", err)
				utils.RespondError(w, http.StatusBadGateway, "failed to refresh channels")
				return
			}
			if err := rosterLoader.Refresh(r.Context()); err != nil {
				log.Printf("[roster] refresh failed: %v", err)
				utils.RespondError(w, http.StatusBadGateway, "failed to refresh members")
				return
			}
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// The fixture tree (channel JSON, members.json, images, thumbnails)
	// is served under the base path so the page works on a project page
	// deployment as well as at the root.
	fileServer := http.FileServer(http.Dir(cfg.Fixtures.Dir))
	base := "/" + strings.Trim(cfg.Assets.BasePath, "/")
	if base == "/" {
		r.Handle("/*", fileServer)
	} else {
		r.Handle(base+"/*", http.StripPrefix(base, fileServer))
	}

	return r
}
