// Package main provides the physq binary entry point.
// physq is a unit calculator over the physq library: it converts values
// between units, inspects registry entries and validates unit definition
// documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/c360studio/physq/config"
	"github.com/c360studio/physq/currency"
	"github.com/c360studio/physq/defs"
	"github.com/c360studio/physq/unit"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "physq"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appState carries the loaded configuration and the lazily built registry
// shared by the subcommands.
type appState struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger

	regOnce sync.Once
	reg     *unit.Registry
	regErr  error
}

func rootCmd() *cobra.Command {
	app := &appState{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Physical quantity calculator",
		Long: `physq converts values between physical units, inspects the unit
registry and validates unit definition documents.

The registry starts from the SI catalog; optional catalogs, YAML
definition documents and currency units are added through configuration
(physq.yaml in the current or a parent directory, or --config).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		convertCmd(app),
		baseCmd(app),
		infoCmd(app),
		listCmd(app),
		defsCmd(app),
		versionCmd(),
	)

	return cmd
}

// setup configures logging and loads the layered configuration.
func (a *appState) setup() error {
	level := slog.LevelWarn
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if a.configPath != "" {
		cfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		a.cfg = cfg
		return nil
	}

	cfg, err := config.NewLoader(a.logger).Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// registry builds the configured registry on first use so commands that
// never resolve units stay offline.
func (a *appState) registry() (*unit.Registry, error) {
	a.regOnce.Do(func() {
		a.reg, a.regErr = buildRegistry(a.cfg, a.logger)
		if a.regErr == nil {
			unit.InitDefault(a.reg)
		}
	})
	return a.reg, a.regErr
}

// buildBaseRegistry assembles the catalog part of the registry: SI and
// common units, the configured optional catalogs and the prefix range.
func buildBaseRegistry(cfg *config.Config) (*unit.Registry, error) {
	r := unit.NewDefaultRegistry()

	for _, catalog := range cfg.Registry.Catalogs {
		var err error
		switch catalog {
		case "imperial":
			err = unit.InstallImperial(r)
		case "binary":
			err = unit.InstallBinary(r)
		default:
			err = fmt.Errorf("unknown catalog %q", catalog)
		}
		if err != nil {
			return nil, fmt.Errorf("install catalog %s: %w", catalog, err)
		}
	}

	if cfg.Registry.Prefixes == config.PrefixesFull {
		for _, name := range []string{"m", "g", "s", "A", "K", "mol", "cd", "rad", "sr"} {
			if err := r.AddPrefixes(name, unit.PrefixFull); err != nil {
				return nil, fmt.Errorf("expand prefixes over %s: %w", name, err)
			}
		}
	}

	return r, nil
}

// buildRegistry extends the base registry with the configured definition
// documents and currency units.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*unit.Registry, error) {
	r, err := buildBaseRegistry(cfg)
	if err != nil {
		return nil, err
	}

	patterns := cfg.Defs.Patterns
	if len(patterns) == 0 {
		patterns = defs.DefaultPatterns
	}
	for _, root := range cfg.Defs.Paths {
		if err := defs.InstallAll(r, root, patterns); err != nil {
			return nil, fmt.Errorf("install definitions under %s: %w", root, err)
		}
	}

	if cfg.Currency.Enabled {
		opts := []currency.ClientOption{currency.WithLogger(logger)}
		if cfg.Currency.BaseURL != "" {
			opts = append(opts, currency.WithBaseURL(cfg.Currency.BaseURL))
		}
		client := currency.NewClient(opts...)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Currency.Timeout)
		defer cancel()

		rates, err := client.Latest(ctx)
		if err != nil {
			logger.Warn("currency rates unavailable, installing euro only", "error", err)
			rates = nil
		}
		if err := currency.Install(r, rates); err != nil {
			return nil, fmt.Errorf("install currencies: %w", err)
		}
	}

	return r, nil
}
