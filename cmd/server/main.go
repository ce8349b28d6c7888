package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/handlers"
	"github.com/plata-app/plata/internal/logger"
	"github.com/plata-app/plata/internal/services"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database connection
	config := db.NewConfig()
	database, err := db.Connect(config)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Seed the shared category set
	categoryService := services.NewCategoryService(database)
	if err := categoryService.EnsureSystemCategories(context.Background()); err != nil {
		log.Fatal("Failed to seed system categories", zap.Error(err))
	}

	router := handlers.NewRouter(database)

	// CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
