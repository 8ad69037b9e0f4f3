package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bancofortis/backend/internal/config"
	"github.com/bancofortis/backend/internal/database"
	"github.com/bancofortis/backend/internal/handlers"
	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/store"
	"github.com/bancofortis/backend/internal/views"
	"github.com/spf13/viper"
)

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.static_dir", "STATIC_DIR")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.static_dir", "./public")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize storage
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	accountStore := store.NewAccountStore(db)
	userStore := store.NewUserStore(db)
	transactionStore := store.NewTransactionStore(db)
	categoryStore := store.NewCategoryStore(db)

	// Initialize services
	transferCfg := config.LoadTransferConfig()
	retryPolicy := services.NewRetryPolicy(transferCfg.MaxAttempts, transferCfg.RetryDelay)
	transferService := services.NewTransferService(
		accountStore,
		services.NewRedisEventPublisher(redisClient, transferCfg.EventsKey),
		retryPolicy,
	)
	userService := services.NewUserService(userStore, services.Argon2ParamsFromConfig())
	accountService := services.NewAccountService(accountStore, userStore, retryPolicy)
	reportService := services.NewReportService(userStore, accountStore, transactionStore)
	categoryService := services.NewCategoryService(categoryStore)

	renderer, err := views.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Setup router
	r := handlers.NewRouter(handlers.Routes{
		Users:      handlers.NewUserHandler(userService, accountService, renderer),
		Accounts:   handlers.NewAccountHandler(accountService, renderer),
		Transfers:  handlers.NewTransferHandler(transferService, userService, renderer),
		Reports:    handlers.NewReportHandler(reportService, renderer),
		Categories: handlers.NewCategoryHandler(categoryService, renderer),
		Health:     handlers.NewHealthHandler(db, redisClient),
		StaticDir:  viper.GetString("server.static_dir"),
	})

	port := viper.GetString("server.port")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
