package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/internal/config"
	httpx "github.com/eshahhh/educounsel/internal/http"
	"github.com/eshahhh/educounsel/internal/http/handlers"
	"github.com/eshahhh/educounsel/internal/http/middleware"
	"github.com/eshahhh/educounsel/internal/infrastructure/auth"
	"github.com/eshahhh/educounsel/internal/infrastructure/database"
	"github.com/eshahhh/educounsel/internal/infrastructure/notifications"
	"github.com/eshahhh/educounsel/internal/infrastructure/repositories"
	"github.com/eshahhh/educounsel/internal/services"
)

// Run wires the service together and blocks serving HTTP.
func Run(cfg *config.Config) error {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "educounsel").Logger()

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	mailer := notifications.NewEmailService(cfg.FrontendURL, log)

	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)

	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc,
		services.AuthConfig{AccessTTL: cfg.AccessTTL, RefreshTTL: cfg.RefreshTTL}, log)
	verificationSvc := services.NewVerificationService(userRepo, sessionRepo, passwordSvc, mailer, rdb.Client,
		services.VerificationConfig{EmailTokenTTL: cfg.EmailTokenTTL, ResetTokenTTL: cfg.ResetTokenTTL}, log)
	policySvc := services.NewPolicyService(cas.E)

	authH := handlers.NewAuthHandlers(authSvc, verificationSvc)
	userH := handlers.NewUserHandlers(userRepo, sessionRepo, log)
	polH := handlers.NewPolicyHandlers(policySvc)

	authMW := middleware.NewAuthMW(tokenSvc, userRepo)
	rbacMW := middleware.NewRBACMw(policySvc)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)

	r := httpx.BuildRouter(authH, userH, polH, authMW, rbacMW, rateLimiter)

	seedPolicies(cas, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// seedPolicies installs the default role table on an empty policy store.
func seedPolicies(cas *auth.CasbinService, log zerolog.Logger) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	cas.E.AddPolicy("role_admin", "/api/admin/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_admin", "/api/users", "GET")
	cas.E.AddPolicy("role_admin", "/api/users/:id/deactivate", "POST")
	_ = cas.E.SavePolicy()
	log.Info().Msg("casbin: seeded default policies")
}
