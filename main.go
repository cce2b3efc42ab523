package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DhruvKhambhata/trackflow/handlers"
	"github.com/DhruvKhambhata/trackflow/internal/notification"
	"github.com/DhruvKhambhata/trackflow/middleware"
	"github.com/DhruvKhambhata/trackflow/services"
)

var (
	dbPool              *pgxpool.Pool
	authService         *services.AuthService
	userService         *services.UserService
	activityService     *services.ActivityService
	logService          *services.LogService
	analyticsService    *services.AnalyticsService
	notificationService *services.NotificationService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	emailService := notification.NewEmailService()

	pushService, err := notification.NewWebPushService()
	if err != nil {
		log.Fatal("Failed to initialize web push:", err)
	}
	log.Println("Web push provider initialized successfully")

	authService, err = services.NewAuthService(dbPool, emailService)
	if err != nil {
		log.Fatal("Failed to initialize auth service:", err)
	}

	userService = services.NewUserService(dbPool)
	activityService = services.NewActivityService(dbPool)
	logService = services.NewLogService(dbPool)
	analyticsService = services.NewAnalyticsService(dbPool, activityService)
	notificationService = services.NewNotificationService(dbPool, pushService, emailService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)
	logHandler := handlers.NewLogHandler(logService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	// Static assets: manifest, icons and the service worker that handles
	// offline caching and push display on the client.
	assetsDir := "./assets"
	fs := http.FileServer(http.Dir(assetsDir))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", fs))
	log.Printf("Serving static files from %s at /assets/", assetsDir)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "trackflow-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Cron-triggered, guarded by a shared secret rather than a bearer token.
	api.Handle("/notifications/send", middleware.CronAuthMiddleware(http.HandlerFunc(notificationHandler.Send))).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService))

	protected.HandleFunc("/user/profile", userHandler.GetProfile).Methods("GET")

	protected.HandleFunc("/activities", activityHandler.GetActivities).Methods("GET")
	protected.HandleFunc("/activities", activityHandler.CreateActivity).Methods("POST")
	protected.HandleFunc("/activities/{id}", activityHandler.DeleteActivity).Methods("DELETE")

	protected.HandleFunc("/logs", logHandler.GetLogs).Methods("GET")
	protected.HandleFunc("/logs", logHandler.UpsertLog).Methods("POST")
	protected.HandleFunc("/logs/today", logHandler.GetTodayLogs).Methods("GET")

	protected.HandleFunc("/analytics/calendar", analyticsHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/analytics/activities", analyticsHandler.GetActivityStats).Methods("GET")
	protected.HandleFunc("/dashboard", analyticsHandler.GetDashboard).Methods("GET")

	protected.HandleFunc("/notifications/subscribe", notificationHandler.SubscribePush).Methods("POST")
	protected.HandleFunc("/notifications/unsubscribe", notificationHandler.UnsubscribePush).Methods("POST")
	protected.HandleFunc("/notifications/email/subscribe", notificationHandler.SubscribeEmail).Methods("POST")
	protected.HandleFunc("/notifications/email/unsubscribe", notificationHandler.UnsubscribeEmail).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Cron-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	notificationService.Dispatcher().Stop()

	log.Println("Server shutdown complete")
}
