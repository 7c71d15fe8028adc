// Recipebook is a small recipe catalog service: a public recipe listing plus
// registration, login, and logout with server-held sessions. This entry point
// wires configuration, the database pool, migrations, services, the HTTP
// router, and graceful shutdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/recipebook-go/apperror"
	"github.com/user/recipebook-go/auth"
	"github.com/user/recipebook-go/background"
	"github.com/user/recipebook-go/config"
	"github.com/user/recipebook-go/db"
	"github.com/user/recipebook-go/recipes"
	"github.com/user/recipebook-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Services and handlers, wired by hand.
	authService := auth.NewService(
		auth.NewPostgresUserStore(pool),
		auth.NewPostgresSessionStore(pool),
		cfg.Auth,
	)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewService(users.NewPostgresStore(pool))
	userHandlers := users.NewHandlers(userService)

	recipeService := recipes.NewService(recipes.NewPostgresStore(pool))
	recipeHandler := recipes.NewHandler(recipeService)

	// Expired-session sweeper; signaled to stop during shutdown.
	sweeperStopChan := make(chan struct{})
	sweeperWG := background.StartSessionSweeper(authService, cfg.Auth.SessionSweepInterval, sweeperStopChan)

	r := chi.NewRouter()

	// Global middleware; chi requires these before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that keeps the JSON error shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Auth: a single action-dispatching endpoint, matching the frontend.
	r.Post("/auth", authHandlers.HandleAuth())

	// Recipe listing is fully public.
	r.Route("/recipes", func(r chi.Router) {
		recipeHandler.RegisterRoutes(r)
	})

	// User routes require a live session.
	r.Route("/users", func(r chi.Router) {
		r.Use(auth.SessionMiddleware(authService))
		r.Get("/me", userHandlers.HandleMe())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(sweeperStopChan)
	sweeperWG.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
