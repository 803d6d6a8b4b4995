package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/dkote/mood-journal/internal/handlers"
	appjwt "github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/middlewares"
	"github.com/dkote/mood-journal/internal/migrations"
	"github.com/dkote/mood-journal/internal/repositories"
	"github.com/dkote/mood-journal/internal/services"

	"github.com/dkote/mood-journal/internal/facades"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title mood-journal API
// @version 1.0.0
// @description Service for face-image emotion analysis and per-user mood journaling
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic,
		inferenceURL, inferenceTimeoutSecond, analysisCacheExpSecond,
		logLevel,
		jwtSecret, jwtUserExpHour, jwtAdminExpHour,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic,
		inferenceURL, inferenceTimeoutSecond, analysisCacheExpSecond,
		logLevel,
		jwtSecret, jwtUserExpHour, jwtAdminExpHour,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, inference, logging, and token
// configuration.
func parseConfig(path string) (
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaAddr, kafkaTopic string,
	inferenceURL string, inferenceTimeoutSecond, analysisCacheExpSecond int,
	logLevel string,
	jwtSecretKey string, jwtUserExpHour, jwtAdminExpHour int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "moodjournal")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config; empty address disables event publishing
	kafkaAddr = getEnv("KAFKA_ADDR", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "mood-events")

	// Emotion inference service config
	inferenceURL = getEnv("INFERENCE_URL", "http://localhost:5000")
	if inferenceTimeoutSecond, err = strconv.Atoi(getEnv("INFERENCE_TIMEOUT_SECOND", "30")); err != nil {
		return
	}
	if analysisCacheExpSecond, err = strconv.Atoi(getEnv("ANALYSIS_CACHE_EXP_SECOND", "300")); err != nil {
		return
	}

	// Token config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtUserExpHour, err = strconv.Atoi(getEnv("JWT_USER_EXP_HOUR", "12")); err != nil {
		return
	}
	if jwtAdminExpHour, err = strconv.Atoi(getEnv("JWT_ADMIN_EXP_HOUR", "2")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaAddr, kafkaTopic string,
	inferenceURL string, inferenceTimeoutSecond, analysisCacheExpSecond int,
	logLevel string,
	jwtSecretKey string, jwtUserExpHour, jwtAdminExpHour int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Apply migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		logger.Log.Fatal("migrations failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for mood events, optional
	var kafkaWriter services.KafkaWriter
	if kafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaAddr),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize token issuer
	userTTL := time.Duration(jwtUserExpHour) * time.Hour
	adminTTL := time.Duration(jwtAdminExpHour) * time.Hour
	tokenIssuer := appjwt.New(jwtSecretKey, userTTL, adminTTL)

	// Initialize repositories and facades
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	adminReadRepo := repositories.NewAdminReadRepository(db)
	moodReadRepo := repositories.NewMoodReadRepository(db)
	moodWriteRepo := repositories.NewMoodWriteRepository(db)
	analysisCache := repositories.NewAnalysisCacheRepository(rdb, time.Duration(analysisCacheExpSecond)*time.Second)
	inference := facades.NewEmotionInferenceFacade(inferenceURL, time.Duration(inferenceTimeoutSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, adminReadRepo, tokenIssuer)
	journalService := services.NewJournalService(moodWriteRepo, moodReadRepo, kafkaWriter)
	analysisService := services.NewAnalysisService(inference, analysisCache)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService, userTTL)
	analyzeHandler := handlers.NewAnalyzeHandler(analysisService)
	saveResultHandler := handlers.NewSaveResultHandler(journalService)
	deleteEntryHandler := handlers.NewDeleteEntryHandler(journalService)
	historyHandler := handlers.NewHistoryHandler(journalService)
	adminLoginHandler := handlers.NewAdminLoginHandler(authService, adminTTL)
	adminHistoryHandler := handlers.NewAdminHistoryHandler(journalService)
	adminDeleteHandler := handlers.NewAdminDeleteEntryHandler(journalService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	userAuth := middlewares.AuthMiddleware(tokenIssuer, appjwt.UserCookieName, false)
	adminAuth := middlewares.AuthMiddleware(tokenIssuer, appjwt.AdminCookieName, true)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.Post("/analyze", analyzeHandler)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(db))
			r.Post("/save_result", saveResultHandler)
			r.Post("/delete_entry", deleteEntryHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(userAuth)
			r.Get("/history", historyHandler)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminLoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminAuth)
			r.Get("/history", adminHistoryHandler)
			r.Delete("/entries/{id}", adminDeleteHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
