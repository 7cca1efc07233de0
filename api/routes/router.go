package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jkengne/boutique-pos-backend/api/controllers"
	"github.com/jkengne/boutique-pos-backend/api/middleware"
	authsvc "github.com/jkengne/boutique-pos-backend/internal/auth"
	cartsvc "github.com/jkengne/boutique-pos-backend/internal/cart"
	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	checkoutsvc "github.com/jkengne/boutique-pos-backend/internal/checkout"
	reportsvc "github.com/jkengne/boutique-pos-backend/internal/reports"
	salessvc "github.com/jkengne/boutique-pos-backend/internal/sales"
	"github.com/jkengne/boutique-pos-backend/internal/scan"
	settingssvc "github.com/jkengne/boutique-pos-backend/internal/settings"
	"github.com/jkengne/boutique-pos-backend/pkg/auth/session"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	"github.com/jkengne/boutique-pos-backend/pkg/db"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
	redisclient "github.com/jkengne/boutique-pos-backend/pkg/redis"
)

type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redisclient.Pinger
	Sessions       session.Checker
	AuthService    authsvc.Service
	CatalogService catalog.Service
	ScanService    scan.Service
	CartService    cartsvc.Service
	CheckoutSvc    checkoutsvc.Service
	SalesService   salessvc.Service
	SettingsSvc    settingssvc.Service
	ReportsService reportsvc.Service
	Metrics        http.Handler
}

// NewRouter assembles the full HTTP surface. Read and terminal endpoints use
// optional auth so an unauthenticated browser lands in demo mode; account
// endpoints demand a live session.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.CORS(),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Terminal(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.CatalogService, logg))
			r.Post("/", controllers.ProductCreate(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.CatalogService, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(deps.CatalogService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.CatalogService, logg))
			r.Post("/{productId}/adjust-stock", controllers.ProductAdjustStock(deps.CatalogService, logg))
		})

		r.Post("/scan", controllers.ScanResolve(deps.ScanService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items", controllers.CartSetQuantity(deps.CartService, logg))
			r.Post("/items/remove", controllers.CartRemoveItem(deps.CartService, logg))
			r.Post("/discount", controllers.CartSetDiscount(deps.CartService, logg))
			r.Post("/customer", controllers.CartSetCustomer(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.CheckoutCommit(deps.CheckoutSvc, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(deps.SalesService, logg))
			r.Get("/{saleId}", controllers.SaleDetail(deps.SalesService, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsFetch(deps.SettingsSvc, logg))
			r.Put("/", controllers.SettingsUpdate(deps.SettingsSvc, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/inventory", controllers.ReportInventory(deps.ReportsService, logg))
			r.Get("/sales", controllers.ReportSales(deps.ReportsService, logg))
		})
	})

	return r
}
