package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawar-yoga/studio-backend/api/controllers"
	"github.com/pawar-yoga/studio-backend/api/middleware"
	"github.com/pawar-yoga/studio-backend/internal/auth"
	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/internal/content"
	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/redis"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

// AdminCookies is the signed admin cookie: session token plus flash notices.
type AdminCookies interface {
	Token(r *http.Request) string
	SetToken(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
	AddFlash(w http.ResponseWriter, r *http.Request, flash types.Flash) error
	PopFlash(w http.ResponseWriter, r *http.Request) (*types.Flash, error)
}

type uploadStore interface {
	Open(ctx context.Context, name string) (*blobstore.Object, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	limiter redis.RateLimiter,
	authService auth.Service,
	cookies AdminCookies,
	contentManager content.Manager,
	consultationService consultations.Service,
	uploads uploadStore,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		"", 0,
	)
	submitPolicy := middleware.NewRateLimitPolicy(
		"consultation",
		cfg.RateLimit.SubmitWindow,
		cfg.RateLimit.SubmitIPLimit,
		"contact",
		cfg.RateLimit.SubmitContactLimit,
	)
	maxUpload := cfg.Uploads.MaxUploadBytes()

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisP,
		}))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Get("/uploads/{filename}", controllers.ServeUpload(uploads, logg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.PublicListProducts(contentManager, logg))
		r.Get("/products/{id}", controllers.PublicGetProduct(contentManager, logg))
		r.Get("/gallery", controllers.PublicListGallery(contentManager, logg))
		r.Get("/gallery/{id}", controllers.PublicGetGalleryImage(contentManager, logg))
	})

	r.With(middleware.RateLimit(submitPolicy, limiter, logg)).
		Post("/submit-consultation", controllers.SubmitConsultation(consultationService, logg))
	r.With(middleware.RateLimit(loginPolicy, limiter, logg)).
		Post("/admin/login", controllers.AdminLogin(authService, cookies, logg))
	r.Get("/logout", controllers.AdminLogout(authService, cookies, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminGate(authService, cookies, "/", logg))

		r.Get(controllers.AdminHome, controllers.AdminDashboard(contentManager, consultationService, cookies, logg))
		r.Post("/create-product", controllers.AdminCreateProduct(contentManager, cookies, maxUpload, logg))
		r.Post("/delete-product/{id}", controllers.AdminDeleteProduct(contentManager, cookies, logg))
		r.Post("/create-gallery-image", controllers.AdminCreateGalleryImage(contentManager, cookies, maxUpload, logg))
		r.Post("/delete-gallery-image/{id}", controllers.AdminDeleteGalleryImage(contentManager, cookies, logg))
		r.Post("/handle-request/{action}/{id}", controllers.AdminHandleRequest(consultationService, cookies, logg))
	})

	return r
}
