package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarquez-dev/mercato-storefront/api/controllers"
	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/media"
	"github.com/dmarquez-dev/mercato-storefront/internal/orders"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/internal/vendor"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/metrics"
	"github.com/dmarquez-dev/mercato-storefront/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	Upstream       *upstream.Client
	Sessions       *session.Manager
	Carts          *cart.Registry
	Orders         *orders.Service
	Vendor         *vendor.Service
	Media          *media.Resolver
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	killer := &controllers.SessionKiller{
		Sessions: deps.Sessions,
		Carts:    deps.Carts,
		Cookie:   cfg.Session,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
		middleware.Session(deps.Sessions, cfg.Session, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Upstream, deps.Sessions, cfg.Session, logg))
		r.Post("/login", controllers.AuthLogin(deps.Upstream, deps.Sessions, cfg.Session, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Upstream, deps.Sessions, deps.Carts, cfg.Session, logg))
		r.Post("/verify-email", controllers.AuthVerifyEmail(deps.Upstream, logg))
		r.Post("/verify-email/resend", controllers.AuthResendVerification(deps.Upstream, logg))
		r.Get("/me", controllers.AuthMe(logg))
	})

	// Public catalog surface, session optional.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Upstream, deps.Media, logg))
		r.Get("/{productId}", controllers.ProductDetail(deps.Upstream, deps.Media, logg))
	})
	r.Get("/api/v1/vendors/{vendorId}/products", controllers.ProductsByVendor(deps.Upstream, deps.Media, logg))
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", controllers.StoreList(deps.Upstream, deps.Media, logg))
		r.Get("/{slug}", controllers.StoreDetail(deps.Upstream, deps.Media, logg))
		r.Get("/{slug}/products", controllers.StoreProducts(deps.Upstream, deps.Media, logg))
		r.Get("/{slug}/reviews", controllers.StoreReviews(deps.Upstream, logg))
		r.With(middleware.RequireAuth(logg)).Post("/{slug}/reviews", controllers.StoreSubmitReview(deps.Upstream, killer, logg))
	})

	// Customer surface, session required.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Carts, killer, logg))
			r.Post("/items", controllers.CartAdd(deps.Carts, killer, logg))
			r.Put("/items", controllers.CartUpdateQuantity(deps.Carts, killer, logg))
			r.Delete("/items", controllers.CartRemove(deps.Carts, killer, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, killer, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Carts, deps.Upstream, killer, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.Orders, killer, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, killer, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, killer, logg))
		})

		r.Post("/vendor-setup", controllers.AuthVendorSetup(deps.Upstream, killer, logg))
		r.Get("/vendor-status", controllers.AuthVendorStatus(deps.Upstream, killer, logg))
	})

	// Seller surface.
	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logg))
		r.Use(middleware.RequireRole("vendor", logg))

		r.Get("/dashboard", controllers.VendorOverview(deps.Vendor, killer, logg))
		r.Get("/store", controllers.VendorMyStore(deps.Upstream, killer, logg))
		r.Get("/profile", controllers.VendorProfile(deps.Upstream, killer, logg))
		r.Put("/profile", controllers.VendorUpdateProfile(deps.Upstream, killer, logg))
		r.Put("/bank-details", controllers.VendorUpdateBankDetails(deps.Upstream, killer, logg))
		r.Get("/earnings", controllers.VendorEarnings(deps.Upstream, killer, logg))
		r.Post("/payouts", controllers.VendorRequestPayout(deps.Upstream, killer, logg))
		r.Get("/reviews", controllers.VendorReviews(deps.Upstream, killer, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.VendorMyProducts(deps.Upstream, deps.Media, killer, logg))
			r.Post("/", controllers.VendorCreateProduct(deps.Upstream, killer, logg))
			r.Put("/{productId}", controllers.VendorUpdateProduct(deps.Upstream, killer, logg))
			r.Delete("/{productId}", controllers.VendorDeleteProduct(deps.Upstream, killer, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.VendorOrderList(deps.Upstream, killer, logg))
			r.Put("/{orderId}/status", controllers.VendorUpdateOrderStatus(deps.Upstream, killer, logg))
		})
	})

	// Operator surface.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Get("/dashboard", controllers.AdminDashboard(deps.Upstream, killer, logg))
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.AdminVendorList(deps.Upstream, killer, logg))
			r.Get("/{vendorId}", controllers.AdminVendorDetail(deps.Upstream, killer, logg))
			r.Put("/{vendorId}/approve", controllers.AdminVendorApprove(deps.Upstream, killer, logg))
			r.Put("/{vendorId}/reject", controllers.AdminVendorReject(deps.Upstream, killer, logg))
			r.Put("/{vendorId}/suspend", controllers.AdminVendorSuspend(deps.Upstream, killer, logg))
			r.Put("/{vendorId}/activate", controllers.AdminVendorActivate(deps.Upstream, killer, logg))
			r.Delete("/{vendorId}", controllers.AdminVendorDelete(deps.Upstream, killer, logg))
		})
		r.Route("/payouts", func(r chi.Router) {
			r.Get("/", controllers.AdminPayoutList(deps.Upstream, killer, logg))
			r.Put("/{payoutId}/approve", controllers.AdminPayoutApprove(deps.Upstream, killer, logg))
			r.Put("/{payoutId}/process", controllers.AdminPayoutProcess(deps.Upstream, killer, logg))
			r.Put("/{payoutId}/reject", controllers.AdminPayoutReject(deps.Upstream, killer, logg))
		})
	})

	return r
}
