package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/api"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/auth"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/config"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/middleware"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/store"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/web"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		fatal(log, "postgres connect", err)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		fatal(log, "postgres migrate", err)
	}

	// First run: populate sample data. The count gate is the only
	// protection; the seeder itself is not idempotent.
	n, err := pgStore.CountUsers(ctx)
	if err != nil {
		fatal(log, "count users", err)
	}
	if n == 0 {
		if err := pgStore.Seed(ctx); err != nil {
			fatal(log, "seed", err)
		}
		log.Info("seeded sample data")
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		fatal(log, "redis connect", err)
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// Reserved for listing attachments; nothing writes here yet.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		fatal(log, "upload dir", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	renderer, err := web.NewTemplateRenderer(log)
	if err != nil {
		fatal(log, "templates", err)
	}
	authHandler := auth.NewHandler(pgStore, sessions, renderer, log)
	webHandler := web.NewHandler(pgStore, pgStore, pgStore, pgStore, renderer, log)
	apiHandler := api.NewHandler(pgStore, pgStore, log)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.CurrentUser(sessions, pgStore))

		r.Get("/", webHandler.Home)
		r.Get("/register", authHandler.Register)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.Login)
		r.Post("/login", authHandler.Login)
		r.Get("/listing/{id}", webHandler.ViewListing)
		r.Get("/user/{username}", webHandler.ViewUser)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/logout", authHandler.Logout)
			r.Get("/dashboard", webHandler.Dashboard)
			r.Get("/listing/new", webHandler.NewListing)
			r.Post("/listing/new", webHandler.NewListing)
			r.Get("/message/new", webHandler.NewMessage)
			r.Post("/message/new", webHandler.NewMessage)
			r.Get("/event/new", webHandler.NewEvent)
			r.Post("/event/new", webHandler.NewEvent)
		})
	})

	// JSON API (read-only, unauthenticated)
	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", apiHandler.Listings)
		r.Get("/users/{id}", apiHandler.User)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(log, "server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
