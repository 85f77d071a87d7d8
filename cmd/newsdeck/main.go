package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/llovera/newsdeck/internal/app"
	"github.com/llovera/newsdeck/internal/config"
	"github.com/llovera/newsdeck/internal/gate"
	"github.com/llovera/newsdeck/internal/news"
	"github.com/llovera/newsdeck/internal/storage"
	"github.com/llovera/newsdeck/internal/store"
	"github.com/llovera/newsdeck/internal/tui"
	"github.com/llovera/newsdeck/internal/tui/theme"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env file: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		log.Fatalf("storage write check failed (%v). Verify NEWSDECK_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	st := store.New(repo,
		store.WithDefaultTheme(theme.DetectDefaultTheme()),
		store.WithPersistErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "warning: could not persist state: %v\n", err)
		}))
	if err := st.Hydrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not restore saved state (%v), starting fresh\n", err)
	}

	client := news.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.Country, nil)
	devGate := gate.New(cfg.DevPassword, st)
	service := app.NewService(client, st, devGate)

	program := tea.NewProgram(tui.NewModel(service), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
