package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestistock/gestistock/internal/app"
	"github.com/gestistock/gestistock/internal/auth"
	"github.com/gestistock/gestistock/internal/clients"
	"github.com/gestistock/gestistock/internal/entrers"
	"github.com/gestistock/gestistock/internal/observability"
	"github.com/gestistock/gestistock/internal/platform/cache"
	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/produits"
	"github.com/gestistock/gestistock/internal/promotions"
	"github.com/gestistock/gestistock/internal/rbac"
	"github.com/gestistock/gestistock/internal/referentiel/categories"
	"github.com/gestistock/gestistock/internal/referentiel/commerciaux"
	"github.com/gestistock/gestistock/internal/referentiel/livreurs"
	"github.com/gestistock/gestistock/internal/referentiel/marques"
	"github.com/gestistock/gestistock/internal/referentiel/secteurs"
	"github.com/gestistock/gestistock/internal/referentiel/transporteurs"
	"github.com/gestistock/gestistock/internal/referentiel/villes"
	"github.com/gestistock/gestistock/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "gestistock_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	rbacService := rbac.NewService(pool, redisClient, cfg.RBACCacheTTL)
	rbacMiddleware := rbac.Middleware{Source: rbacService, Logger: logger}

	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	villesHandler := villes.NewHandler(logger, villes.NewService(villes.NewRepository(pool)), rbacMiddleware)
	secteursHandler := secteurs.NewHandler(logger, secteurs.NewService(secteurs.NewRepository(pool)), rbacMiddleware)
	marquesHandler := marques.NewHandler(logger, marques.NewService(marques.NewRepository(pool)), rbacMiddleware)
	categoriesHandler := categories.NewHandler(logger, categories.NewService(categories.NewRepository(pool)), rbacMiddleware)
	produitsHandler := produits.NewHandler(logger, produits.NewService(produits.NewRepository(pool)), rbacMiddleware)
	clientsHandler := clients.NewHandler(logger, clients.NewService(clients.NewRepository(pool)), rbacMiddleware)
	commerciauxHandler := commerciaux.NewHandler(logger, commerciaux.NewService(commerciaux.NewRepository(pool)), rbacMiddleware)
	transporteursHandler := transporteurs.NewHandler(logger, transporteurs.NewService(transporteurs.NewRepository(pool)), rbacMiddleware)
	livreursHandler := livreurs.NewHandler(logger, livreurs.NewService(livreurs.NewRepository(pool)), rbacMiddleware)
	promotionsHandler := promotions.NewHandler(logger, promotions.NewService(promotions.NewRepository(pool)), rbacMiddleware)
	entrersHandler := entrers.NewHandler(logger, entrers.NewService(entrers.NewRepository(pool)), rbacMiddleware)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		RBACMiddleware: rbacMiddleware,

		AuthHandler:          authHandler,
		VillesHandler:        villesHandler,
		SecteursHandler:      secteursHandler,
		MarquesHandler:       marquesHandler,
		CategoriesHandler:    categoriesHandler,
		ProduitsHandler:      produitsHandler,
		ClientsHandler:       clientsHandler,
		CommerciauxHandler:   commerciauxHandler,
		TransporteursHandler: transporteursHandler,
		LivreursHandler:      livreursHandler,
		PromotionsHandler:    promotionsHandler,
		EntrersHandler:       entrersHandler,

		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
