package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/parkside-pos/ordering-terminal/internal/api/http"
	"github.com/parkside-pos/ordering-terminal/internal/api/http/handlers"
	"github.com/parkside-pos/ordering-terminal/internal/cart"
	"github.com/parkside-pos/ordering-terminal/internal/config"
	"github.com/parkside-pos/ordering-terminal/internal/credential"
	"github.com/parkside-pos/ordering-terminal/internal/events"
	"github.com/parkside-pos/ordering-terminal/internal/observability"
	"github.com/parkside-pos/ordering-terminal/internal/remote"
	"github.com/parkside-pos/ordering-terminal/internal/routing"
	"github.com/parkside-pos/ordering-terminal/internal/secure"
	"github.com/parkside-pos/ordering-terminal/internal/session"
	"github.com/parkside-pos/ordering-terminal/internal/storage"
	"github.com/parkside-pos/ordering-terminal/internal/theme"
	"github.com/parkside-pos/ordering-terminal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	store := storage.NewRedisStore(cfg.Redis, cfg.App.TerminalID, logger)
	defer store.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(dispatcher, logger)

	issuer := credential.NewIssuer(cfg.Auth.GuestTokenSecret, cfg.Auth.GuestTokenTTLMinutes)

	sessions, err := session.NewManager(ctx, store, issuer, dispatcher, logger, session.EntryPoints{
		CustomerEntry: routing.PathMenu,
		StaffEntry:    routing.PathStaffLogin,
		ModeSelect:    routing.PathLogin,
	})
	if err != nil {
		logger.Fatal("failed to resolve session state", zap.Error(err))
	}

	cartStore, err := cart.NewStore(ctx, store, dispatcher, logger)
	if err != nil {
		logger.Fatal("failed to hydrate cart", zap.Error(err))
	}
	sessions.AttachCart(cartStore)

	transport := &remote.Transport{
		Credentials: func(ctx context.Context) string {
			raw, _, _ := store.Get(ctx, storage.KeyCustomerCredential)
			return raw
		},
	}
	upstream := remote.NewClient(cfg.Upstream, transport, logger, metrics)
	settings := remote.NewSettingsCache(upstream, logger, metrics)
	encryptor := secure.NewEncryptor(upstream, logger)
	prefs := theme.NewPreferences(store, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Session:    handlers.NewSessionHandler(sessions, cartStore, upstream, encryptor, cfg.Auth.StaffOverridePINHash, logger),
		Navigation: handlers.NewNavigationHandler(sessions, routing.DefaultTable(), metrics),
		Cart:       handlers.NewCartHandler(cartStore),
		Settings:   handlers.NewSettingsHandler(settings),
		Theme:      handlers.NewThemeHandler(prefs),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
