package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/routing"
	"route-planner-service/internal/adapters/sheetsource"
	"route-planner-service/internal/api"
	"route-planner-service/internal/config"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
)

const sheetsReadScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

// main is the application composition root.
// It wires concrete adapters (Sheets, Routes) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	source, err := newSheetSource(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Geocode results live in memory for the life of the process only.
	geocodeCache := cache.NewMemoryCache()
	optimizer, err := routing.NewGoogleRoutesProvider(cfg.APIKey, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	manager := services.NewSessionManager(source, optimizer)
	router := api.NewRouter(manager)

	// Timeouts are tuned for interactive optimization (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s backend=%s", cfg.Port, cfg.SheetBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newSheetSource selects the sheet backend. The Google backend
// authenticates with the service-account credentials file; the
// workbook backend reads local .xlsx files and needs no credentials.
func newSheetSource(ctx context.Context, cfg *config.Config) (ports.SheetSource, error) {
	if cfg.SheetBackend == config.BackendWorkbook {
		return sheetsource.NewWorkbookSource(cfg.WorkbookDir), nil
	}

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheetsReadScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = 15 * time.Second
	return sheetsource.NewGoogleSheetSource(client), nil
}
