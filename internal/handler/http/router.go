package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
)

// RouterOptions carries the deployment values the router needs.
type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	// GoogleLogin registers the Google OAuth routes.
	GoogleLogin bool
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	healthHandler HealthHandler,
	authHandler AuthHandler,
	storeHandler StoreHandler,
	staffHandler StaffHandler,
	policyHandler PolicyHandler,
	attendanceHandler AttendanceHandler,
	shiftHandler ShiftHandler,
	exportHandler ExportHandler,
	kioskHandler KioskHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/api/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			if opts.GoogleLogin {
				r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
				r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
			}
		})

		// Kiosk terminals, scoped to one store by their token
		r.Route("/kiosk/stores/{storeID}", func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.KioskRequired(JWTService.JWTAuth()))

			r.Get("/staff", kioskHandler.Board)
			r.Post("/punches", kioskHandler.Punch)
			r.Get("/events", kioskHandler.Events)
		})

		// Administrators
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/stores", func(r chi.Router) {
				r.Get("/", storeHandler.List)
				r.Post("/", storeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", storeHandler.Get)
					r.Put("/", storeHandler.Update)
					r.Patch("/active", storeHandler.ToggleActive)
					r.Get("/policies", policyHandler.ListByStore)
					r.Get("/policy", policyHandler.Current)
					r.Post("/kiosk-token", kioskHandler.IssueToken)
				})
			})

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", staffHandler.List)
				r.Post("/", staffHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", staffHandler.Get)
					r.Put("/", staffHandler.Update)
					r.Delete("/", staffHandler.Delete)
					r.Post("/retire", staffHandler.Retire)
					r.Post("/suspend", staffHandler.Suspend)
					r.Post("/reinstate", staffHandler.Reinstate)
				})
			})

			r.Route("/policies", func(r chi.Router) {
				r.Post("/", policyHandler.Create)
				r.Get("/{id}", policyHandler.Get)
				r.Put("/{id}", policyHandler.Update)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}", attendanceHandler.Update)
			})

			r.Route("/shift-templates", func(r chi.Router) {
				r.Get("/", shiftHandler.ListTemplates)
				r.Post("/", shiftHandler.CreateTemplate)
				r.Put("/{id}", shiftHandler.UpdateTemplate)
				r.Delete("/{id}", shiftHandler.DeactivateTemplate)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Put("/cell", shiftHandler.AssignCell)
				r.Get("/grid", shiftHandler.Grid)
				r.Get("/grid/export", shiftHandler.ExportGrid)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Get("/attendance", exportHandler.Report)
				r.Get("/attendance.xlsx", exportHandler.Workbook)
				r.Get("/attendance.csv", exportHandler.CSV)
			})
		})
	})
	return r
}
