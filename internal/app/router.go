package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gestistock/gestistock/internal/auth"
	"github.com/gestistock/gestistock/internal/clients"
	"github.com/gestistock/gestistock/internal/entrers"
	"github.com/gestistock/gestistock/internal/observability"
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

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	RBACMiddleware rbac.Middleware

	AuthHandler          *auth.Handler
	VillesHandler        *villes.Handler
	SecteursHandler      *secteurs.Handler
	MarquesHandler       *marques.Handler
	CategoriesHandler    *categories.Handler
	ProduitsHandler      *produits.Handler
	ClientsHandler       *clients.Handler
	CommerciauxHandler   *commerciaux.Handler
	TransporteursHandler *transporteurs.Handler
	LivreursHandler      *livreurs.Handler
	PromotionsHandler    *promotions.Handler
	EntrersHandler       *entrers.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		RBAC:           params.RBACMiddleware,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/villes", params.VillesHandler.MountRoutes)
	r.Route("/secteurs", params.SecteursHandler.MountRoutes)
	r.Route("/brands", params.MarquesHandler.MountRoutes)
	r.Route("/categories", params.CategoriesHandler.MountRoutes)
	r.Route("/products", params.ProduitsHandler.MountRoutes)
	r.Route("/clients", params.ClientsHandler.MountRoutes)
	r.Route("/commerciaux", params.CommerciauxHandler.MountRoutes)
	r.Route("/transporteurs", params.TransporteursHandler.MountRoutes)
	r.Route("/livreurs", params.LivreursHandler.MountRoutes)
	r.Route("/promotions", params.PromotionsHandler.MountRoutes)
	r.Route("/entrers", params.EntrersHandler.MountRoutes)

	params.PromotionsHandler.MountAPIRoutes(r)

	r.Route("/api", func(api chi.Router) {
		api.Get("/secteurs-by-ville", params.SecteursHandler.ListByVille)
		params.ProduitsHandler.MountAPIRoutes(api)
		params.EntrersHandler.MountAPIRoutes(api)
	})

	return r
}
