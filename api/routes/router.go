package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelarq/tableside-backend/api/controllers"
	"github.com/avelarq/tableside-backend/api/middleware"
	cartsvc "github.com/avelarq/tableside-backend/internal/cart"
	menusvc "github.com/avelarq/tableside-backend/internal/menu"
	ordersvc "github.com/avelarq/tableside-backend/internal/orders"
	paymentsvc "github.com/avelarq/tableside-backend/internal/payments"
	tablesvc "github.com/avelarq/tableside-backend/internal/tables"
	"github.com/avelarq/tableside-backend/pkg/config"
	"github.com/avelarq/tableside-backend/pkg/db"
	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/avelarq/tableside-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Tables   tablesvc.Service
	Menu     menusvc.Service
	Carts    *cartsvc.Manager
	Orders   ordersvc.Service
	Payments paymentsvc.Service
	Metrics  http.Handler
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, params.Redis))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Scanning a QR code is the entry point, so session creation
		// stays unauthenticated.
		r.Post("/tables/session", controllers.StartTableSession(params.Tables, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.TableSession(params.Tables, logg))

			r.Delete("/tables/session", controllers.EndTableSession(params.Tables, logg))
			r.Get("/tables", controllers.ListTables(params.Tables, logg))

			r.Route("/menu", func(r chi.Router) {
				r.Get("/categories", controllers.MenuCategories(params.Menu, logg))
				r.Get("/items", controllers.MenuBrowse(params.Menu, logg))
				r.Get("/items/{itemID}", controllers.MenuItem(params.Menu, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartView(params.Carts, logg))
				r.Post("/items", controllers.CartAddItem(params.Carts, params.Menu, logg))
				r.Patch("/items/{itemID}", controllers.CartUpdateQuantity(params.Carts, logg))
				r.Delete("/items/{itemID}", controllers.CartRemoveItem(params.Carts, logg))
				r.Delete("/", controllers.CartClear(params.Carts, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				submitLimiter := middleware.SessionRateLimit(
					params.Redis,
					"orders:submit",
					cfg.RateLimit.SubmitLimit,
					cfg.RateLimit.SubmitWindow,
					logg,
				)
				r.With(submitLimiter).Post("/", controllers.SubmitOrder(params.Orders, params.Carts, logg))
				r.Get("/", controllers.ListSessionOrders(params.Orders, logg))
				r.Get("/{orderID}", controllers.GetOrder(params.Orders, logg))
				r.Patch("/{orderID}/status", controllers.UpdateOrderStatus(params.Orders, logg))
				r.Post("/{orderID}/cancel", controllers.CancelOrder(params.Orders, logg))
				r.Get("/{orderID}/payment-intent", controllers.OrderPaymentIntent(params.Payments, logg))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/intents", controllers.CreatePaymentIntent(params.Payments, logg))
				r.Post("/intents/{intentID}/confirm", controllers.ConfirmPaymentIntent(params.Payments, logg))
				r.Post("/intents/{intentID}/refund", controllers.RefundPaymentIntent(params.Payments, logg))
			})
		})
	})

	return r
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
