package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Maheshkadam-Delxn/eye/cache"
	"github.com/Maheshkadam-Delxn/eye/config"
	"github.com/Maheshkadam-Delxn/eye/database"
	"github.com/Maheshkadam-Delxn/eye/routes"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.InitDB(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := database.InitializeRedis(cfg.RedisAddress); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	statsCache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	// The signing key is loaded exactly once; a bad key is fatal at boot.
	tokenMaker, err := utils.NewTokenMaker(cfg.TokenSecret)
	if err != nil {
		log.Fatalf("failed to initialize token maker: %v", err)
	}

	mailer := utils.NewMailerFromEnv()
	if mailer == nil {
		log.Println("SMTP not configured, appointment emails disabled")
	}

	handler := routes.SetupRoutes(statsCache, cfg, db, tokenMaker, mailer)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
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
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
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
	if len(tokenSecret) != utils.SymmetricKeySize {
		return nil, errors.New("TOKEN_SECRET must be exactly 32 bytes long")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8930"
	}

	return &config.AppConfig{
		DBURL:        dbURL,
		RedisAddress: redisAddress,
		TokenSecret:  []byte(tokenSecret),
		Environment:  os.Getenv("ENV"),
		Port:         port,
	}, nil
}
