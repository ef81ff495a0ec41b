package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/config"
	"github.com/jask/tickerdeck/internal/database"
	"github.com/jask/tickerdeck/internal/database/repository"
	"github.com/jask/tickerdeck/internal/market"
	"github.com/jask/tickerdeck/internal/prefs"
	"github.com/jask/tickerdeck/internal/service"
)

// app holds what every command needs.
type app struct {
	cfg       config.Config
	prefs     prefs.Prefs
	store     *prefs.Store
	catErr    error
	db        *sql.DB
	collector *service.Collector
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store := prefs.NewStore(config.Dir())
	p, err := store.Load()
	if err != nil {
		log.Printf("warn: ignoring prefs: %v", err)
	}
	if cfg.Market.SheetURL == "" {
		cfg.Market.SheetURL = p.SheetURL
	}

	cat, catErr := catalog.Load(cfg.Catalog.Path)
	if catErr != nil {
		log.Printf("catalog: %v", catErr)
		cat = catalog.Empty()
	}

	provider, err := market.New(market.Options{
		Provider:     cfg.Market.Provider,
		Timeout:      cfg.Market.Timeout,
		YahooBaseURL: cfg.Market.YahooBaseURL,
		SheetURL:     cfg.Market.SheetURL,
		AlpacaKey:    cfg.Market.AlpacaKey,
		AlpacaSecret: cfg.Market.AlpacaSecret,
	})
	if err != nil {
		return nil, err
	}
	if sheet, ok := provider.(*market.SheetProvider); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := sheet.Ping(pingCtx); err != nil {
			log.Printf("warn: sheet proxy: %v", err)
		}
		cancel()
	}

	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		prefs:  p,
		store:  store,
		catErr: catErr,
		db:     db,
		collector: &service.Collector{
			Catalog:     cat,
			Provider:    provider,
			Records:     repository.NewExportRepo(db),
			DataDir:     cfg.Data.Dir,
			Concurrency: cfg.Market.Concurrency,
			PreviewRows: cfg.UI.PreviewRows,
			ChartPoints: cfg.UI.ChartPoints,
		},
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
