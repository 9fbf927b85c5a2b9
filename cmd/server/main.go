package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SliskoGG/Tune-Spotter/pkg/logger"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter/audd"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter/media"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter/storage"
)

var (
	port           int
	dbPath         string
	tempDir        string
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 8001, "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("TUNESPOTTER_DB_PATH", storage.DefaultDBFile), "Path to the sqlite store")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("TUNESPOTTER_TEMP_DIR", os.TempDir()), "Temporary directory for downloaded media")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()
	flag.Parse()

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	auddToken := os.Getenv("AUDD_API_TOKEN")
	if auddToken == "" {
		logger.Warnf("AUDD_API_TOKEN is not set; recognition requests will fail until it is configured")
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	service, err := tunespotter.NewService(
		tunespotter.WithFetcher(media.NewFetcher(tempDir)),
		tunespotter.WithRecognizer(audd.New(auddToken)),
		tunespotter.WithLogger(logger.GetLogger()),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		TempDir:        tempDir,
		AuddConfigured: auddToken != "",
		AllowedOrigins: origins,
	}

	server := NewServer(service, store, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
