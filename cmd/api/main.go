package main

import (
	"log"
	"net/http"
	"os"

	"rfid-inventory-api/internal"
	"rfid-inventory-api/internal/config"
)

func main() {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	srv := internal.NewServer(dsn, cfg)

	log.Println("Starting RFID Inventory API server...")
	log.Printf("JWT Issuer: %s", cfg.JWTIssuer)
	log.Printf("JWT Expiry: %v", cfg.JWTExpiry)
	log.Printf("Page size: %d", cfg.PageSize)
	log.Println("Listening on :8080")

	log.Fatal(http.ListenAndServe(":8080", srv.Router))
}
