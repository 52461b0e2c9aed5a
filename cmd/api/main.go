package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/beyond-imagination/teampage/internal/assets"
	"github.com/beyond-imagination/teampage/internal/catalog"
	"github.com/beyond-imagination/teampage/internal/config"
	"github.com/beyond-imagination/teampage/internal/fixture"
	"github.com/beyond-imagination/teampage/internal/handler"
	"github.com/beyond-imagination/teampage/internal/roster"
	contactService "github.com/beyond-imagination/teampage/internal/service/contact"
	"github.com/beyond-imagination/teampage/internal/service/conversation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	resolver := assets.NewResolver(cfg.Assets.BasePath)
	var src fixture.Source = fixture.NewDirSource(cfg.Fixtures.Dir)
	if cfg.Fixtures.URL != "" {
		src = fixture.NewHTTPSource(cfg.Fixtures.URL)
		log.Printf("loading fixtures from %s", cfg.Fixtures.URL)
	}
	cat := catalog.NewLoader(src)
	rosterLoader := roster.NewLoader(src)
	convSvc := conversation.NewService(cat)

	var notifier contactService.Notifier
	if cfg.Relay.SlackWebhookURL != "" {
		notifier = contactService.NewSlackNotifier(cfg.Relay.SlackWebhookURL)
		log.Println("contact relay: Slack webhook configured")
	} else {
		notifier = contactService.NopNotifier{}
		log.Println("contact relay: no webhook configured, submissions are accepted without forwarding")
	}
	contactSvc := contactService.NewService(convSvc, cat, notifier)

	// Warm the catalog and roster so the first page load does not pay
	// for the fixture fetches; failures stay visible as error state.
	if _, err := cat.ListSummaries(ctx); err != nil {
		log.Printf("warning: channel catalog preload failed: %v", err)
	}
	if _, err := rosterLoader.Load(ctx); err != nil {
		log.Printf("warning: roster preload failed: %v", err)
	}

	router := handler.NewRouter(cfg, cat, rosterLoader, convSvc, contactSvc, resolver)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("team page backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
