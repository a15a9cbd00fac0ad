package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"metrology/cmd"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer root.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The hub must be consuming before the engine starts publishing.
	go root.Hub().Run(ctx)
	root.Engine().Start(ctx)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Absence of a .env file is normal in containerized deployments; the
	// environment then supplies everything.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		StorageBackend:        envOrDefault("STORAGE_BACKEND", cmd.BackendFile),
		DataFile:              envOrDefault("DATA_FILE", "data/orders.json"),
		BackupDir:             envOrDefault("BACKUP_DIR", "data/backups"),
		SQLitePath:            envOrDefault("SQLITE_PATH", "data/orders.db"),
		DBHost:                envOrDefault("DB_HOST", "localhost"),
		DBPort:                envOrDefault("DB_PORT", "5432"),
		DBUser:                envOrDefault("DB_USER", "postgres"),
		DBPassword:            envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                envOrDefault("DB_NAME", "metrology"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		ResetToken:            os.Getenv("RESET_TOKEN"),
		ResyncIntervalSeconds: envIntOrDefault("RESYNC_INTERVAL_SECONDS", 30),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	root.CreateHTTPServer().RegisterRoutes(e)
	e.GET("/ws", root.CreateWSHandler().Serve)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
