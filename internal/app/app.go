// Package app wires configuration, data, retrieval, assessment and the
// attempt log into one value the commands share.
package app

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/dxtutor/internal/assessment"
	"github.com/abhisek/dxtutor/internal/config"
	"github.com/abhisek/dxtutor/internal/dataset"
	"github.com/abhisek/dxtutor/internal/retrieval"
	"github.com/abhisek/dxtutor/internal/store"
)

// Options controls what New builds.
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// WithStore opens the attempt log. Read-only commands leave it off so
	// they never create a database file.
	WithStore bool
}

// App holds the dependencies built once at start-up. Everything except the
// store is immutable.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Dataset   *dataset.Dataset
	Retriever *retrieval.Retriever
	Assessor  *assessment.Service

	// Store is nil unless Options.WithStore was set.
	Store *store.Store
}

// New loads the dataset and builds the services. Missing or invalid data
// is fatal.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ds, err := loadDataset(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded",
		"version", ds.Version,
		"diagnoses", len(ds.Graph.Diagnoses()),
		"cases", ds.Library.Len(),
	)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Dataset:   ds,
		Retriever: retrieval.New(ds.Library, logger),
	}

	var attempts store.AttemptRepo
	if opts.WithStore {
		dbPath, err := ResolveDBPath(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.Store = st
		attempts = st.AttemptRepo()
		logger.Debug("attempt log opened", "path", dbPath)
	}

	a.Assessor, err = assessment.NewService(assessment.Options{
		Graph:            ds.Graph,
		Retriever:        a.Retriever,
		Confusables:      ds.Confusables,
		Attempts:         attempts,
		Logger:           logger,
		TopK:             cfg.TopK,
		MinJustification: cfg.MinJustification,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the store, if open.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// Attempts returns the attempt log or an error when the store is closed.
func (a *App) Attempts() (store.AttemptRepo, error) {
	if a.Store == nil {
		return nil, fmt.Errorf("attempt log is not open")
	}
	return a.Store.AttemptRepo(), nil
}

// ResolveDBPath returns path when set (creating its directory), else the
// default XDG location.
func ResolveDBPath(path string) (string, error) {
	if path != "" {
		return path, store.EnsureDir(path)
	}
	return store.DefaultDBPath()
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		ds, err := dataset.Default()
		if err != nil {
			return nil, fmt.Errorf("built-in dataset: %w", err)
		}
		return ds, nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}
