package main

import (
	"budget-tracker-server/src/api"
	"budget-tracker-server/src/config"
	"budget-tracker-server/src/db"
	"context"
	"log"
	"net/http"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migrations failed: %v", err)
	}

	db.InitCache()

	// Router
	router := api.NewRouter(pool, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
