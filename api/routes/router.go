package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ocampodev/supplyline-backend/api/controllers"
	"github.com/ocampodev/supplyline-backend/api/middleware"
	"github.com/ocampodev/supplyline-backend/internal/audit"
	authsvc "github.com/ocampodev/supplyline-backend/internal/auth"
	"github.com/ocampodev/supplyline-backend/internal/catalog"
	"github.com/ocampodev/supplyline-backend/internal/notifications"
	"github.com/ocampodev/supplyline-backend/internal/orders"
	"github.com/ocampodev/supplyline-backend/internal/salesnotes"
	"github.com/ocampodev/supplyline-backend/internal/shippingpool"
	"github.com/ocampodev/supplyline-backend/internal/stores"
	"github.com/ocampodev/supplyline-backend/pkg/auth/session"
	"github.com/ocampodev/supplyline-backend/pkg/config"
	"github.com/ocampodev/supplyline-backend/pkg/db"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Sessions      session.AccessSessionChecker
	Auth          authsvc.Service
	Orders        orders.Service
	ShippingPool  shippingpool.Service
	SalesNotes    salesnotes.Service
	Notifications notifications.Service
	Catalog       catalog.Repository
	Stores        stores.Repository
	AuditLogs     audit.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var idemStore redis.IdempotencyStore
	var redisPinger redis.Pinger
	if deps.Redis != nil {
		idemStore = deps.Redis
		redisPinger = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		chimiddleware.RealIP,
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AuthLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStoreMember(logg))

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.OrderList(deps.Orders, logg))
					r.Post("/", controllers.OrderCreate(deps.Orders, logg))
					r.Get("/{orderID}", controllers.OrderDetail(deps.Orders, logg))
					r.Patch("/{orderID}/notes", controllers.OrderUpdateNotes(deps.Orders, logg))
					r.With(middleware.RequireAdmin(logg)).Post("/{orderID}/lock", controllers.OrderToggleLock(deps.Orders, logg))
				})

				r.Route("/sales-notes", func(r chi.Router) {
					r.Get("/", controllers.SalesNoteList(deps.SalesNotes, logg))
					r.With(middleware.RequireAdmin(logg)).Post("/", controllers.SalesNoteCreate(deps.SalesNotes, logg))
					r.Get("/{noteID}", controllers.SalesNoteDetail(deps.SalesNotes, logg))
					r.With(middleware.RequireAdmin(logg)).Post("/{noteID}/ship", controllers.SalesNoteShip(deps.SalesNotes, logg))
					r.Post("/{noteID}/receive", controllers.SalesNoteReceive(deps.SalesNotes, logg))
					r.With(middleware.RequireAdmin(logg)).Delete("/{noteID}", controllers.SalesNoteDelete(deps.SalesNotes, logg))
				})

				r.Get("/products", controllers.ProductList(deps.Catalog, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))

				r.Post("/order-items/{itemID}/status", controllers.OrderItemSetStatus(deps.Orders, logg))

				r.Route("/shipping-pool", func(r chi.Router) {
					r.Get("/", controllers.PoolGrouped(deps.ShippingPool, logg))
					r.Post("/", controllers.PoolAdd(deps.ShippingPool, logg))
					r.Delete("/{entryID}", controllers.PoolRemove(deps.ShippingPool, logg))
					r.Post("/commit", controllers.PoolCommit(deps.SalesNotes, logg))
				})

				r.Get("/stores", controllers.StoreList(deps.Stores, logg))
				r.Get("/audit-logs", controllers.AuditLogList(deps.AuditLogs, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
				r.Post("/{notificationID}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
			})
		})
	})

	return r
}
