// cmd/server/main.go
// Entry point for the Ruff Ryder scoring API server. The cmd/ folder holds
// executable binaries, and internal/ holds the packages they are built from.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	// cors allows the web app to talk to the API from a different origin.
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout.
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/12ian34/ruffryder-api/internal/config"
	"github.com/12ian34/ruffryder-api/internal/database"
	"github.com/12ian34/ruffryder-api/internal/handlers"
	"github.com/12ian34/ruffryder-api/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()

	// Connect to PostgreSQL and bring the schema up to date. Running pending
	// migrations on startup keeps the database in sync with the binary.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The Hub fans leaderboard snapshots out to websocket watchers. It runs
	// in its own goroutine for the life of the process.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Ruff Ryder API",
	})

	// --- Global middleware ---
	app.Use(logger.New())
	// Allow any origin in development; lock this down per environment.
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/health", handlers.HealthCheck)

	// Live score updates: one socket per watched tournament.
	app.Get("/ws/tournaments/:id", handlers.WebSocketUpgrade, handlers.WatchTournament(hub))

	// --- API routes ---
	api := app.Group("/api/v1")

	// Tournament management and read models
	api.Get("/tournaments", handlers.GetTournaments(db))
	api.Post("/tournaments", handlers.CreateTournament(db))
	api.Post("/tournaments/:id/activate", handlers.ActivateTournament(db))
	api.Delete("/tournaments/:id", handlers.DeleteTournament(db))
	api.Get("/tournaments/:id/leaderboard", handlers.GetLeaderboard(db))
	api.Get("/tournaments/:id/progress", handlers.GetProgress(db))

	// Games and scoring
	api.Post("/tournaments/:id/games", handlers.CreateGame(db))
	api.Get("/games/:id", handlers.GetGame(db))
	api.Put("/games/:id/holes/:holeNumber", handlers.RecordHoleScore(db, hub))
	api.Put("/games/:id/status", handlers.UpdateGameStatus(db, hub))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
