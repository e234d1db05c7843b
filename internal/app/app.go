package app

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/shikidesk/internal/accent"
	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/bridge"
	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/config"
	"github.com/five82/shikidesk/internal/logging"
	"github.com/five82/shikidesk/internal/prefs"
	"github.com/five82/shikidesk/internal/shiki"
	"github.com/five82/shikidesk/internal/state"
	"github.com/five82/shikidesk/internal/ui"
)

// Options configure the shikidesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shikidesk/prefs.toml
	// Serve runs the JSON bridge instead of the terminal browser.
	Serve bool
	// Bind overrides the configured bridge address.
	Bind string
}

// components are the process-wide services shared by both front ends.
type components struct {
	catalog  *catalog.Service
	accents  *accent.Cache
	settings *prefs.Store
	logger   hclog.Logger
}

// Run boots shikidesk until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := newLogger(cfg, opts.Serve)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	c, err := build(cfg, opts.PrefsPath, logger)
	if err != nil {
		return err
	}

	if opts.Serve {
		bind := cfg.BridgeBind
		if opts.Bind != "" {
			bind = opts.Bind
		}
		return c.bridge(cfg).ListenAndServe(ctx, bind)
	}

	logger.Info("starting browser", "origin", cfg.APIOrigin)
	return ui.Run(ui.Options{
		Context:  ctx,
		Catalog:  c.catalog,
		Accents:  c.accents,
		Settings: c.settings,
		Store:    &state.Store{},
		Logger:   logger.Named("ui"),
	})
}

// newLogger writes to the log file while the browser owns the terminal and
// to stderr when serving.
func newLogger(cfg config.Config, serve bool) (hclog.Logger, io.Closer, error) {
	opts := logging.Options{Name: "shikidesk", Level: cfg.LogLevel}
	if !serve {
		opts.File = cfg.LogPath()
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, closer, nil
}

func build(cfg config.Config, prefsPath string, logger hclog.Logger) (components, error) {
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		return components{}, fmt.Errorf("load prefs: %w", err)
	}
	settings := prefs.NewStore(prefsPath, userPrefs)

	client, err := shiki.NewClient(cfg.APIOrigin, shiki.WithUserAgent(cfg.UserAgent))
	if err != nil {
		return components{}, fmt.Errorf("init shikimori client: %w", err)
	}

	translator := apperr.Translator{Locale: apperr.ParseLocale(cfg.Locale)}

	service := catalog.NewService(client, settings,
		catalog.WithMapper(catalog.Mapper{Origin: client.Origin()}),
		catalog.WithLogger(logger.Named("catalog")),
		catalog.WithTranslator(translator),
	)

	cacheOpts := []accent.CacheOption{
		accent.WithLogger(logger.Named("accent")),
		accent.WithTranslator(translator),
	}
	if cfg.AccentSingleFlight {
		cacheOpts = append(cacheOpts, accent.WithSingleFlight())
	}

	return components{
		catalog:  service,
		accents:  accent.NewCache(nil, cacheOpts...),
		settings: settings,
		logger:   logger,
	}, nil
}

func (c components) bridge(cfg config.Config) *bridge.Server {
	return bridge.New(c.catalog, c.accents, c.settings,
		bridge.WithLogger(c.logger.Named("bridge")),
		bridge.WithTranslator(apperr.Translator{Locale: apperr.ParseLocale(cfg.Locale)}),
	)
}
