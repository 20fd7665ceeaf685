package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/handler"
	"github.com/Tarush5253/swasthya-setu/internal/adapters/middleware"
	"github.com/Tarush5253/swasthya-setu/internal/adapters/repository"
	"github.com/Tarush5253/swasthya-setu/internal/adapters/session"
	"github.com/Tarush5253/swasthya-setu/internal/adapters/upstream"
	"github.com/Tarush5253/swasthya-setu/internal/config"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
	"github.com/Tarush5253/swasthya-setu/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	// The activity outbox is optional; the gateway runs without it when no
	// database is configured.
	var db *sql.DB
	var outboxRepo ports.OutboxRepository
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		outboxRepo = repository.NewSQLOutboxRepository(db)
		log.Println("Activity outbox enabled")
	} else {
		log.Println("DB_CONNECTION_STRING not set, activity outbox disabled")
	}

	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL)
	sessionStore := session.NewRedisStore(redisClient, cfg.SessionTTL)
	cookieCodec := session.NewCookieCodec(cfg.SessionKey, cfg.SessionTTL)

	sessionService := services.NewSessionService(sessionStore, upstreamClient, outboxRepo)
	resourceService := services.NewResourceService(upstreamClient, outboxRepo)

	guard := middleware.NewRouteGuard(cookieCodec, sessionStore)

	authHandler := handler.NewAuthHandler(sessionService, resourceService, cookieCodec)
	resourceHandler := handler.NewResourceHandler(resourceService)
	requestHandler := handler.NewRequestHandler(resourceService)
	healthHandler := handler.NewHealthHandler(db, redisClient, upstreamClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public endpoints
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("GET /session", authHandler.Session)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /hospitals", resourceHandler.ListHospitals)
	mux.HandleFunc("GET /blood-banks", resourceHandler.ListBloodBanks)
	mux.HandleFunc("GET /resources/status", resourceHandler.Status)

	// Regular user endpoints
	mux.Handle("POST /requests/{hospitalId}",
		guard.RequireRole([]domain.Role{domain.RoleUser}, http.HandlerFunc(requestHandler.CreateBedRequest)),
	)
	mux.Handle("POST /requests/blood-requests/{bloodBankId}",
		guard.RequireRole([]domain.Role{domain.RoleUser}, http.HandlerFunc(requestHandler.CreateBloodRequest)),
	)
	mux.Handle("GET /requests/history",
		guard.RequireRole([]domain.Role{domain.RoleUser}, http.HandlerFunc(requestHandler.History)),
	)

	// Hospital admin endpoints
	mux.Handle("GET /requests/hospital-bed-requests",
		guard.RequireRole([]domain.Role{domain.RoleHospitalAdmin}, http.HandlerFunc(requestHandler.ListBedRequests)),
	)
	mux.Handle("PATCH /requests/bed-requests/{id}",
		guard.RequireRole([]domain.Role{domain.RoleHospitalAdmin}, http.HandlerFunc(requestHandler.UpdateBedRequestStatus)),
	)
	mux.Handle("PUT /hospitals/{id}/beds",
		guard.RequireRole([]domain.Role{domain.RoleHospitalAdmin}, http.HandlerFunc(resourceHandler.UpdateBeds)),
	)

	// Blood bank admin endpoints
	mux.Handle("GET /requests/hospital-blood-requests",
		guard.RequireRole([]domain.Role{domain.RoleBloodBankAdmin}, http.HandlerFunc(requestHandler.ListBloodRequests)),
	)
	mux.Handle("PATCH /requests/blood-requests/{id}",
		guard.RequireRole([]domain.Role{domain.RoleBloodBankAdmin}, http.HandlerFunc(requestHandler.UpdateBloodRequestStatus)),
	)
	mux.Handle("PATCH /blood-banks/{id}/stock",
		guard.RequireRole([]domain.Role{domain.RoleBloodBankAdmin}, http.HandlerFunc(resourceHandler.UpdateStock)),
	)

	var root http.Handler = mux
	root = middleware.Metrics(root)
	root = middleware.CORSMiddleware(cfg.AllowedOrigins)(root)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: root,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown...", sig)
	case err := <-errChan:
		log.Fatalf("Could not start server: %s\n", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Shutdown complete")
}
