package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/steveyegge/strata/internal/config"
	"github.com/steveyegge/strata/internal/jira"
	"github.com/steveyegge/strata/internal/pipeline"
)

// Default file names inside the data directory.
const (
	defaultConfigFile       = "config.yaml"
	defaultDictionariesFile = "dictionaries.toml"
	defaultCyclesFile       = "cycles.yaml"
	defaultTicketsFile      = "tickets.json"
	defaultCatalogFile      = "catalog.json"
)

// loadConfig reads the config overlay plus the dictionaries file. Both are
// optional; missing files fall back to built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = filepath.Join(dataDir, defaultConfigFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	dictPath := filepath.Join(dataDir, defaultDictionariesFile)
	if _, err := os.Stat(dictPath); err == nil {
		if err := cfg.LoadDictionaries(dictPath); err != nil {
			return nil, fmt.Errorf("load dictionaries %s: %w", dictPath, err)
		}
	}
	return cfg, nil
}

// loadInput reads the ticket snapshot, roadmap catalog, and cycle definitions
// from the data directory. Tickets are required; catalog and cycles degrade to
// empty with a warning.
func loadInput(ticketsPath, catalogPath string) (pipeline.Input, error) {
	if ticketsPath == "" {
		ticketsPath = filepath.Join(dataDir, defaultTicketsFile)
	}
	if catalogPath == "" {
		catalogPath = filepath.Join(dataDir, defaultCatalogFile)
	}

	tickets, err := jira.LoadIssues(ticketsPath)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("load tickets %s: %w", ticketsPath, err)
	}

	in := pipeline.Input{Tickets: tickets}

	if catalog, err := jira.LoadCatalog(catalogPath); err == nil {
		in.Catalog = catalog
	} else if !errors.Is(err, os.ErrNotExist) {
		return pipeline.Input{}, fmt.Errorf("load catalog %s: %w", catalogPath, err)
	} else {
		warnf("no roadmap catalog at %s; items keep empty taxonomy", catalogPath)
	}

	cyclesPath := filepath.Join(dataDir, defaultCyclesFile)
	if cycles, err := config.LoadCycles(cyclesPath); err == nil {
		in.Cycles = cycles
	} else if !errors.Is(err, os.ErrNotExist) {
		return pipeline.Input{}, fmt.Errorf("load cycles %s: %w", cyclesPath, err)
	} else {
		warnf("no cycle definitions at %s; postponement detection is off", cyclesPath)
	}

	return in, nil
}
