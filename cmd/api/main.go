package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/config"
	appHTTP "github.com/kintai-works/kintai-backend-go/internal/handler/http"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/cron"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/oauth"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/sse"
	"github.com/kintai-works/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-works/kintai-backend-go/internal/service/attendance"
	serviceAuth "github.com/kintai-works/kintai-backend-go/internal/service/auth"
	exportService "github.com/kintai-works/kintai-backend-go/internal/service/export"
	kioskService "github.com/kintai-works/kintai-backend-go/internal/service/kiosk"
	policyService "github.com/kintai-works/kintai-backend-go/internal/service/policy"
	shiftService "github.com/kintai-works/kintai-backend-go/internal/service/shift"
	staffService "github.com/kintai-works/kintai-backend-go/internal/service/staff"
	storeService "github.com/kintai-works/kintai-backend-go/internal/service/store"
)

const version = "v1.0.0"

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})).With(slog.String("app", "kintai"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	loc := cfg.Location()
	hub := sse.NewHub()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	storeRepo := postgresql.NewStoreRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	dailyAttendanceRepo := postgresql.NewDailyAttendanceRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	exportRepo := postgresql.NewExportRepository(db)

	JWTService := jwt.NewJWTService(jwt.Options{
		SecretKey:                  cfg.JWT.Secret,
		AccessTokenExpirationTime:  cfg.JWT.AccessExpiration,
		RefreshTokenExpirationTime: cfg.JWT.RefreshExpiration,
		KioskTokenExpirationTime:   cfg.JWT.KioskExpiration,
		SecureCookie:               cfg.App.Env == "production",
	})

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, JWTService, refreshTokenRepo)
	storeSvc := storeService.NewStoreService(storeRepo)
	staffSvc := staffService.NewStaffService(staffRepo, storeRepo)
	policySvc := policyService.NewPolicyService(policyRepo, storeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, dailyAttendanceRepo, punchRepo, staffRepo, hub, loc)
	shiftSvc := shiftService.NewShiftService(shiftTemplateRepo, shiftRepo, staffRepo, storeRepo, policySvc, loc)
	exportSvc := exportService.NewExportService(exportRepo, storeRepo, policySvc, loc)
	kioskSvc := kioskService.NewKioskService(storeRepo, staffRepo, punchRepo, attendanceSvc, hub, JWTService, loc)

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cron.NewScheduler()
		if err := cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.Cron.PendingSpec); err != nil {
			slog.Error("Failed to register cron jobs", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AppName:        "kintai",
			Version:        version,
			Env:            cfg.App.Env,
			AllowedOrigins: []string{cfg.App.FrontendURL},
			GoogleLogin:    googleService != nil,
		},
		JWTService,
		appHTTP.NewHealthHandler(db),
		appHTTP.NewAuthHandler(JWTService, authSvc, googleService, cfg.App.FrontendURL),
		appHTTP.NewStoreHandler(storeSvc),
		appHTTP.NewStaffHandler(staffSvc),
		appHTTP.NewPolicyHandler(policySvc, loc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewShiftHandler(shiftSvc),
		appHTTP.NewExportHandler(exportSvc),
		appHTTP.NewKioskHandler(kioskSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
