package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"

	"reelbox/internal/config"
	"reelbox/internal/container"
	"reelbox/internal/handlers"
	"reelbox/internal/logger"
)

func main() {
	logger.Init()
	log := logger.Get()

	if err := godotenv.Load(".env.local"); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	ctx := context.Background()

	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer c.Close()

	handler := handlers.New(c.Store, c.Catalog, c.Sessions, c.Logger)

	port := config.GetEnv("PORT", "8080")
	log.Infof("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler.Router()))
}
