package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"CityGeneral/cache"
	"CityGeneral/config"
	"CityGeneral/database"
	"CityGeneral/routes"
	"CityGeneral/utils"
)

func main() {
	// Load configuration from environment variables
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Hash the bootstrap admin password before touching the database
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "ChangeMe123"
	}
	adminHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("failed to hash bootstrap admin password: %v", err)
	}

	// Initialize the database
	db, err := database.InitDB(context.Background(), cfg.DBURL, adminHash)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Initialize Redis
	if err := database.InitializeRedis(cfg.RedisAddress); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	tokens, err := utils.NewTokenMaker(cfg.GetTokenSecret(), time.Now)
	if err != nil {
		log.Fatalf("failed to initialize token maker: %v", err)
	}
	policy := utils.NewPasswordPolicy(cfg.PasswordValidityDays, time.Now)

	// Pass the config to SetupRoutes
	handler := routes.SetupRoutes(cache, cfg, db, tokens, policy)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":8930",
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("Starting server on :8930")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait() // Wait for all goroutines to finish before exiting
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	tokenSecret := os.Getenv("TOKEN_SECRET")
	if tokenSecret == "" {
		return nil, errors.New("missing TOKEN_SECRET environment variable")
	}

	smtpPort, err := envAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	validityDays, err := envAsInt("PASSWORD_VALIDITY_DAYS", 90)
	if err != nil {
		return nil, err
	}
	accessExpiry, err := envAsDuration("ACCESS_TOKEN_EXPIRY", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	refreshExpiry, err := envAsDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &config.AppConfig{
		DBURL:                dbURL,
		RedisAddress:         redisAddress,
		TokenSecret:          tokenSecret,
		AccessTokenExpiry:    accessExpiry,
		RefreshTokenExpiry:   refreshExpiry,
		PasswordValidityDays: validityDays,
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             smtpPort,
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
		AllowedOrigins:       origins,
	}, nil
}

func envAsInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " environment variable")
	}
	return value, nil
}

func envAsDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " environment variable")
	}
	return value, nil
}
