package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/config"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/favorites"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/handlers"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/mq"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/notify"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository/postgres"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/service"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/storage"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// Deps carries the optional infrastructure the handlers need beyond the
// database. Nil values degrade gracefully (console notifier, no uploads, no
// event publishing).
type Deps struct {
	Store    *storage.Client
	Notifier notify.Notifier
	Events   *mq.Publisher
	Guests   *favorites.LocalStore
}

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Org"},
		ExposedHeaders:   []string{"X-Org-Warning"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Repos
	userRepo := postgres.NewUserRepo(db)
	profileRepo := postgres.NewProfileRepo(db)
	propertyRepo := postgres.NewPropertyRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	leadRepo := postgres.NewLeadRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	orgRepo := postgres.NewOrgRepo(db)
	zoneRepo := postgres.NewZoneRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	// Services
	authSvc := service.NewAuthService(userRepo, profileRepo, deps.Notifier, log, cfg.SessionSecret, cfg.SiteURL)
	favSvc := service.NewFavoritesService(favoriteRepo, deps.Guests)
	leadSvc := service.NewLeadService(leadRepo, propertyRepo, deps.Notifier, deps.Events, log, cfg.MailTo)

	// Handlers
	audit := handlers.NewAuditor(auditRepo, log)
	authH := handlers.NewAuthHTTP(authSvc, userRepo, profileRepo, log)
	profileH := handlers.NewProfileHTTP(profileRepo)
	propertyH := handlers.NewPropertyHTTP(propertyRepo)
	agentH := handlers.NewAgentHTTP(profileRepo)
	favoriteH := handlers.NewFavoriteHTTP(favSvc)
	leadH := handlers.NewLeadHTTP(leadSvc, leadRepo, audit)
	zoneH := handlers.NewZoneHTTP(zoneRepo, audit)
	adminPropertyH := handlers.NewAdminPropertyHTTP(propertyRepo, audit)
	adminUserH := handlers.NewAdminUserHTTP(userRepo, profileRepo, audit)
	orgH := handlers.NewOrgHTTP(orgRepo, audit)
	settingsH := handlers.NewSettingsHTTP(settingsRepo, audit)
	uploadH := handlers.NewUploadHTTP(deps.Store, audit)
	dashboardH := handlers.NewDashboardHTTP(propertyRepo, leadRepo, auditRepo)

	withAuth := middleware.WithAuth(log, cfg)
	withRole := middleware.WithRole(log, profileRepo)

	// Health
	r.Get("/healthz", handlers.Health())
	r.Get("/healthz/storage", handlers.StorageHealth(deps.Store))

	// Auth
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authH.Register())
		r.Post("/login", authH.Login())
		r.Post("/logout", authH.Logout())
		r.Post("/resend-verification", authH.ResendVerification())
		r.Post("/verify", authH.Verify())
		r.With(withAuth).Get("/me", authH.Me())
	})

	// Own profile
	r.Route("/api/me/profile", func(r chi.Router) {
		r.Use(withAuth, middleware.RequireAuth(cfg.SiteURL))
		r.Get("/", profileH.Get())
		r.Put("/", profileH.Update())
	})

	// Public catalog
	r.Get("/api/properties", propertyH.List())
	r.Get("/api/properties/{id}", propertyH.Get())
	r.Get("/api/agents", agentH.List())
	r.Get("/api/zones", zoneH.ListPublic())

	// Lead submission forms come from anywhere (embedded maps, portals), so
	// this group runs with open CORS and its own tight limit.
	r.Route("/api/public", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		r.Use(httprate.Limit(5, time.Hour,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				utils.JSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, try again later",
					"code":  "rate_limited",
				})
			}),
		))
		r.Post("/contact", leadH.SubmitContact())
		r.Post("/schedule-visit", leadH.SubmitVisit())
	})

	// Favorites work for guests and signed-in users alike; WithAuth only
	// attaches identity when a session exists.
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(withAuth)
		r.Get("/", favoriteH.List())
		r.Delete("/", favoriteH.Clear())
		r.Post("/{id}", favoriteH.Add())
		r.Delete("/{id}", favoriteH.Remove())
		r.Post("/{id}/toggle", favoriteH.Toggle())
	})

	// Back office. The guard order matters: identity, then role resolution,
	// then staff/profile checks, then org scoping.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(withAuth)
		r.Use(middleware.RequireAuth(cfg.SiteURL))
		r.Use(withRole)
		r.Use(middleware.RequireStaff)
		r.Use(middleware.RequireCompleteProfile)
		r.Use(middleware.OrgScope)

		r.Get("/dashboard", dashboardH.Summary())

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", adminPropertyH.List())
			r.Post("/", adminPropertyH.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", adminPropertyH.Update())
				r.Delete("/", adminPropertyH.Delete())
				r.Patch("/featured", adminPropertyH.SetFeatured())
				r.Post("/images", adminPropertyH.AddImage())
				r.Put("/images/order", adminPropertyH.ReorderImages())
				r.Delete("/images/{imageID}", adminPropertyH.RemoveImage())
			})
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Get("/", leadH.ListInquiries())
			r.Patch("/{id}/status", leadH.UpdateInquiryStatus())
		})
		r.Route("/visits", func(r chi.Router) {
			r.Get("/", leadH.ListVisits())
			r.Patch("/{id}/status", leadH.UpdateVisitStatus())
		})

		r.Route("/zones", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", zoneH.List())
			r.Post("/", zoneH.Create())
			r.Put("/{id}", zoneH.Update())
			r.Delete("/{id}", zoneH.Delete())
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", adminUserH.List())
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/role", adminUserH.SetRole())
				r.Patch("/active", adminUserH.SetActive())
				r.Get("/assignments", adminUserH.ListAssignments())
				r.Post("/assignments", adminUserH.AddAssignment())
				r.Delete("/assignments/{assignmentID}", adminUserH.RemoveAssignment())
			})
		})

		r.Route("/organizations", func(r chi.Router) {
			r.With(middleware.RequireAdmin).Get("/", orgH.List())
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperadmin)
				r.Post("/", orgH.Create())
				r.Put("/{id}", orgH.Update())
				r.Delete("/{id}", orgH.Delete())
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", settingsH.List())
			r.Get("/{key}", settingsH.Get())
			r.Put("/{key}", settingsH.Put())
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", uploadH.Upload())
			r.Delete("/", uploadH.Delete())
		})

		r.With(middleware.RequireAdmin).Get("/audit", dashboardH.AuditLog())
	})

	return r
}
