package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetquest/sweetquest-backend/api/controllers"
	"github.com/sweetquest/sweetquest-backend/api/middleware"
	"github.com/sweetquest/sweetquest-backend/internal/affiliates"
	authsvc "github.com/sweetquest/sweetquest-backend/internal/auth"
	cartsvc "github.com/sweetquest/sweetquest-backend/internal/cart"
	"github.com/sweetquest/sweetquest-backend/internal/catalog"
	checkoutsvc "github.com/sweetquest/sweetquest-backend/internal/checkout"
	"github.com/sweetquest/sweetquest-backend/internal/paymentmethods"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	"github.com/sweetquest/sweetquest-backend/internal/settings"
	"github.com/sweetquest/sweetquest-backend/pkg/auth/session"
	"github.com/sweetquest/sweetquest-backend/pkg/config"
	"github.com/sweetquest/sweetquest-backend/pkg/db"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
	"github.com/sweetquest/sweetquest-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	referralResolver *referrals.Resolver,
	referralService referrals.Service,
	affiliateService affiliates.Service,
	paymentMethodService paymentmethods.Service,
	settingsService settings.Service,
	authService authsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.VisitorSession(logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(catalogService, logg))
			r.Get("/{itemID}", controllers.MenuGet(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/lines/{lineKey}", controllers.CartUpdateLine(cartService, logg))
			r.Delete("/lines/{lineKey}", controllers.CartRemoveLine(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/step", controllers.CheckoutStep(logg))
			r.Post("/submit", controllers.CheckoutSubmit(checkoutService, logg))
		})

		r.Route("/referral", func(r chi.Router) {
			r.Get("/", controllers.ReferralResolve(referralResolver, logg))
			r.Delete("/", controllers.ReferralClear(referralResolver, logg))
		})

		r.Get("/payment-methods", controllers.PaymentMethodsList(paymentMethodService, logg))

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsList(settingsService, logg))
			r.Get("/{settingID}", controllers.SettingGet(settingsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/auth/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Post("/auth/logout", controllers.AuthLogout(authService, logg))

			r.Route("/menu", func(r chi.Router) {
				r.Get("/", controllers.AdminMenuList(catalogService, logg))
				r.Post("/", controllers.AdminMenuCreate(catalogService, logg))
				r.Patch("/{itemID}", controllers.AdminMenuUpdate(catalogService, logg))
				r.Delete("/{itemID}", controllers.AdminMenuDelete(catalogService, logg))
			})

			r.Route("/affiliates", func(r chi.Router) {
				r.Get("/", controllers.AdminAffiliatesList(affiliateService, logg))
				r.Post("/", controllers.AdminAffiliateCreate(affiliateService, logg))
				r.Post("/generate-code", controllers.AdminAffiliateGenerateCode(affiliateService, logg))
				r.Patch("/{affiliateID}", controllers.AdminAffiliateUpdate(affiliateService, logg))
				r.Delete("/{affiliateID}", controllers.AdminAffiliateDelete(affiliateService, logg))
				r.Get("/{affiliateID}/orders", controllers.AdminAffiliateOrders(referralService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(referralService, logg))
				r.Patch("/{orderID}/status", controllers.AdminOrderStatusUpdate(referralService, logg))
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/referrals", controllers.AdminReferralStats(referralService, logg))
				r.Get("/affiliates", controllers.AdminAffiliateAnalytics(referralService, logg))
			})

			r.Get("/payment-methods", controllers.AdminPaymentMethodsList(paymentMethodService, logg))
			r.Patch("/payment-methods/{methodID}", controllers.AdminPaymentMethodUpdate(paymentMethodService, logg))
			r.Put("/settings/{settingID}", controllers.AdminSettingPut(settingsService, logg))
		})
	})

	return r
}
