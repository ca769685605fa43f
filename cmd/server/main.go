package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/config"
	"github.com/yourusername/outreach-api/internal/handler"
	"github.com/yourusername/outreach-api/internal/middleware"
	"github.com/yourusername/outreach-api/internal/portfolio"
	"github.com/yourusername/outreach-api/internal/repository"
	"github.com/yourusername/outreach-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Str("llm", cfg.LLMProvider).Msg("Starting Outreach API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepo(pool)
	revokedRepo := repository.NewRevokedTokenRepo(pool)

	// ── Services ─────────────────────────────────────────
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	llm, err := service.NewGenerator(service.LLMOptions{
		Provider:      cfg.LLMProvider,
		GroqAPIKey:    cfg.GroqAPIKey,
		GroqBaseURL:   cfg.GroqBaseURL,
		GroqModel:     cfg.GroqModel,
		ClaudeAPIKey:  cfg.ClaudeAPIKey,
		ClaudeBaseURL: cfg.ClaudeBaseURL,
		ClaudeModel:   cfg.ClaudeModel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM client")
	}

	index := portfolio.Load(cfg.PortfolioPath)

	outreach := service.NewOutreachService(
		service.NewPageFetcher(cfg.FetchTimeout, cfg.FetchMaxBytes),
		service.NewLLMJobExtractor(llm),
		service.NewLLMEmailDrafter(llm, service.Persona{Name: cfg.SenderName, Profile: cfg.SenderProfile}),
		portfolio.NewMatcher(index, cfg.DefaultLinks),
	)

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(userRepo, revokedRepo, tokens, cfg.IsProduction())
	emailHandler := handler.NewEmailHandler(outreach)

	// ── Middleware ────────────────────────────────────────
	var idTokens middleware.IDTokenVerifier
	if cfg.FirebaseProjectID != "" {
		fb, err := middleware.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase auth")
		}
		idTokens = fb
	}
	authMiddleware := middleware.NewAuthMiddleware(tokens, revokedRepo, idTokens)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "outreach-api",
			"time":    time.Now().UTC(),
		})
	})

	// Auth (unauthenticated)
	auth := r.Group("/auth", rateLimiter.Limit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/api/email", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		api.POST("/generate", emailHandler.Generate)
		api.POST("/generate-from-data", emailHandler.GenerateFromData)
		api.GET("/test", emailHandler.Test)
	}

	// ── Background ───────────────────────────────────────
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go purgeRevokedTokens(bgCtx, revokedRepo, time.Hour)

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // fetch + two LLM calls
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Outreach API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopBackground()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// purgeRevokedTokens drops revocations for tokens that have expired anyway
func purgeRevokedTokens(ctx context.Context, repo *repository.RevokedTokenRepo, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to purge revoked tokens")
				continue
			}
			if n > 0 {
				log.Info().Int64("purged", n).Msg("Purged expired token revocations")
			}
		}
	}
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("requestId", middleware.GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
