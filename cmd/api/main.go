package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sekelas/kelasku/internal/auth"
	authStore "github.com/sekelas/kelasku/internal/auth/store"
	"github.com/sekelas/kelasku/internal/confession"
	confessionStore "github.com/sekelas/kelasku/internal/confession/store"
	"github.com/sekelas/kelasku/internal/config"
	"github.com/sekelas/kelasku/internal/database"
	"github.com/sekelas/kelasku/internal/export"
	kelaskuHttp "github.com/sekelas/kelasku/internal/http"
	authHandler "github.com/sekelas/kelasku/internal/http/auth"
	confessionHandler "github.com/sekelas/kelasku/internal/http/confession"
	exportHandler "github.com/sekelas/kelasku/internal/http/export"
	importHandler "github.com/sekelas/kelasku/internal/http/importcsv"
	kasHandler "github.com/sekelas/kelasku/internal/http/kas"
	noteHandler "github.com/sekelas/kelasku/internal/http/note"
	pengeluaranHandler "github.com/sekelas/kelasku/internal/http/pengeluaran"
	shoppingHandler "github.com/sekelas/kelasku/internal/http/shopping"
	"github.com/sekelas/kelasku/internal/importer"
	"github.com/sekelas/kelasku/internal/ledger"
	ledgerStore "github.com/sekelas/kelasku/internal/ledger/store"
	"github.com/sekelas/kelasku/internal/matching"
	matchingStore "github.com/sekelas/kelasku/internal/matching/store"
	"github.com/sekelas/kelasku/internal/note"
	noteStore "github.com/sekelas/kelasku/internal/note/store"
	"github.com/sekelas/kelasku/internal/shopping"
	shoppingStore "github.com/sekelas/kelasku/internal/shopping/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	kasStore := ledgerStore.New(db)

	var (
		authService       = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
		ledgerService     = ledger.NewService(kasStore, kasStore, cfg.Roster)
		confessionService = confession.NewService(confessionStore.New(db))
		shoppingService   = shopping.NewService(shoppingStore.New(db))
		noteService       = note.NewService(noteStore.New(db))
		matchingService   = matching.NewService(matchingStore.New(db), cfg.Roster)
		exportService     = export.NewService(ledgerService)
	)

	admin := auth.RequireSession(authService)

	var (
		authH        = authHandler.NewHandler(authService)
		kasH         = kasHandler.NewHandler(ledgerService, admin, cfg.PollInterval)
		pengeluaranH = pengeluaranHandler.NewHandler(ledgerService, admin)
		confessionH  = confessionHandler.NewHandler(confessionService, admin)
		shoppingH    = shoppingHandler.NewHandler(shoppingService, admin)
		noteH        = noteHandler.NewHandler(noteService, admin)
		importH      = importHandler.NewHandler(importer.NewParser(), ledgerService, matchingService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := kelaskuHttp.New(
		cfg.AllowedOrigins,
		admin,
		authH,
		kasH,
		pengeluaranH,
		confessionH,
		shoppingH,
		noteH,
		importH,
		exportH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
