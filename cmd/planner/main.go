package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/routing"
	"route-planner-service/internal/adapters/sheetsource"
	"route-planner-service/internal/config"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
)

const sheetsReadScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

// main wires the same adapters as the server behind a single local
// session and hands it to the interactive shell.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	source, err := newSheetSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	optimizer, err := routing.NewGoogleRoutesProvider(cfg.APIKey, cache.NewMemoryCache())
	if err != nil {
		log.Fatal(err)
	}

	session := services.NewSession(source, optimizer)
	newShell(session, os.Stdin, os.Stdout).run(ctx)
}

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
