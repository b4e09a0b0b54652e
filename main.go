package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Dozzergeeky/mgnrega-insights/config"
	"github.com/Dozzergeeky/mgnrega-insights/handlers"
	"github.com/Dozzergeeky/mgnrega-insights/mgnrega"
	"github.com/Dozzergeeky/mgnrega-insights/middleware"
	"github.com/Dozzergeeky/mgnrega-insights/store"
)

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	config.LoadEnv()
	cfg := config.Load()

	// PostgreSQL backs only the primary district reference tier; the
	// chain falls through to Mongo and the static table, so a missing
	// database must not stop the dashboard from serving.
	log.Println("Initializing PostgreSQL database...")
	db, err := config.OpenPostgresWithRetry(cfg)
	if err != nil {
		log.Printf("Warning: PostgreSQL unavailable, district reference will fall back: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	log.Println("Initializing MongoDB...")
	mongoClient, mongoDB, err := config.ConnectMongo(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: MongoDB unavailable, read endpoints will serve mock data: %v", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongoClient.Disconnect(ctx)
		}()
	}

	var metrics *store.Metrics
	if mongoDB != nil {
		metrics = store.NewMetrics(mongoDB)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := metrics.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: could not ensure metric indexes: %v", err)
		}
		if err := store.SeedDistricts(ctx, db, mongoDB); err != nil {
			log.Printf("Warning: district seeding failed: %v", err)
		}
		cancel()
	}

	districts := store.NewTieredDistricts(db, mongoDB)
	caches := config.NewCaches()
	client := mgnrega.NewClient(cfg)

	// Leave the store and syncer unset when Mongo is absent: handlers
	// degrade to mock data instead of dereferencing a dead client.
	var metricsReader handlers.MetricsReader
	var syncer *mgnrega.Syncer
	if metrics != nil {
		metricsReader = metrics
		syncer = mgnrega.NewSyncer(client, metrics, districts)
	}

	dashboardHandler := &handlers.DashboardHandler{Store: metricsReader, Caches: caches}
	historyHandler := &handlers.HistoryHandler{Store: metricsReader}
	districtsHandler := &handlers.DistrictsHandler{Districts: districts, Caches: caches}
	syncHandler := &handlers.SyncHandler{Syncer: syncer, Cfg: cfg, Caches: caches}
	healthHandler := &handlers.HealthHandler{Mongo: mongoClient, DB: db}

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:3002",
			"http://127.0.0.1:3000",
			"https://mgnrega-insights.vercel.app",
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"Origin",
			"X-Requested-With",
			"X-Scheduler-Token",
		},
		ExposedHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:         86400,
	})

	if cfg.CORSDebug {
		r.Use(middleware.CORSDebugMiddleware)
	}
	r.Use(corsHandler.Handler)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CompressHandler)
	// Recovery sits inside compression so a panic is handled before the
	// deferred gzip close can commit an implicit 200.
	r.Use(middleware.RecoveryMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/history", historyHandler.GetHistory).Methods("GET")
	api.HandleFunc("/districts", districtsHandler.GetDistricts).Methods("GET")
	api.HandleFunc("/sync", syncHandler.TriggerSync).Methods("POST")
	api.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")
	log.Println("Routes registered successfully")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Dashboard endpoint: http://localhost:%s/api/v1/dashboard", cfg.Port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", cfg.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	log.Println("Server stopped")
}
