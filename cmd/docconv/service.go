package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/docconv/internal/convert"
	"github.com/pdiddy/docconv/internal/history"
	"github.com/pdiddy/docconv/internal/rasterize"
	"github.com/pdiddy/docconv/pkg/types"
)

// loadConfig merges defaults, config file, environment and bound flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// newOpener returns the PDF renderer selected by the configured backend.
// The poppler backend probes the host only when the first PDF is opened.
func newOpener(cfg types.RasterConfig) (rasterize.Opener, error) {
	switch cfg.Backend {
	case types.BackendFitz, "":
		return rasterize.OpenFitz, nil
	case types.BackendPoppler:
		return rasterize.PopplerOpener(cfg.PopplerImage, logger), nil
	default:
		return nil, fmt.Errorf("unknown PDF backend %q (want %s or %s)",
			cfg.Backend, types.BackendFitz, types.BackendPoppler)
	}
}

// newService builds the conversion service. The returned cleanup closes the
// history database when one is configured.
func newService() (*convert.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	open, err := newOpener(cfg.PDF)
	if err != nil {
		return nil, nil, err
	}

	if cfg.History.Path == "" {
		return convert.NewService(open, cfg, logger, nil), func() {}, nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("closing history database")
		}
	}
	return convert.NewService(open, cfg, logger, store), cleanup, nil
}
