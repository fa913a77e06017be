package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/physq/defs"
	"github.com/c360studio/physq/quantity"
	"github.com/c360studio/physq/unit"
	"github.com/c360studio/physq/unitdocs"
)

func convertCmd(app *appState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM [TO...]",
		Short: "Convert a value between units",
		Long: `Convert a value from one unit into one or more target units.

A single target performs a direct conversion. Several targets decompose
the value mixed-radix style, largest scale first:

  physq convert 3661 s h min s    ->  1 h  1 min  1 s

With no target the value is rescaled to the prefixed variant that reads
best:

  physq convert 0.0000002 F      ->  200 nF`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}

			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse value %q: %w", args[0], err)
			}
			from, err := reg.Resolve(args[1])
			if err != nil {
				return err
			}
			q := quantity.New(quantity.Scalar(value), from)

			if len(args) == 2 {
				scaled := q.Autoscale(reg)
				scaled.Format = format
				fmt.Fprintln(cmd.OutOrStdout(), scaled.String())
				return nil
			}

			targets := make([]*unit.Unit, 0, len(args)-2)
			for _, expr := range args[2:] {
				u, err := reg.Resolve(expr)
				if err != nil {
					return err
				}
				targets = append(targets, u)
			}

			parts, err := q.Split(targets...)
			if err != nil {
				return err
			}

			rendered := make([]string, len(parts))
			for i, p := range parts {
				p.Format = format
				rendered[i] = p.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rendered, "  "))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Value format verb, e.g. %.4g")
	return cmd
}

func baseCmd(app *appState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "base VALUE UNIT",
		Short: "Reduce a value to base units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}

			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse value %q: %w", args[0], err)
			}
			u, err := reg.Resolve(args[1])
			if err != nil {
				return err
			}

			q := quantity.New(quantity.Scalar(value), u).Base()
			q.Format = format
			fmt.Fprintln(cmd.OutOrStdout(), q.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Value format verb, e.g. %.4g")
	return cmd
}

func infoCmd(app *appState) *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "info UNIT",
		Short: "Show a unit's definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}
			u, err := reg.Resolve(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:       %s\n", u.Name())
			if u.VerboseName() != "" {
				fmt.Fprintf(w, "Verbose:    %s\n", u.VerboseName())
			}
			fmt.Fprintf(w, "Factor:     %v\n", u.Factor())
			if u.Offset() != 0 {
				fmt.Fprintf(w, "Offset:     %v\n", u.Offset())
			}
			fmt.Fprintf(w, "Dimension:  %s\n", dimensionString(u))
			if u.IsPrefixed() {
				fmt.Fprintf(w, "Prefix of:  %s\n", u.BaseUnit().Name())
			}
			if u.URL() != "" {
				fmt.Fprintf(w, "Reference:  %s\n", u.URL())
			}

			if !fetch {
				return nil
			}

			fetcher := unitdocs.NewFetcher(app.cfg.Docs.Timeout, app.cfg.Docs.MaxBodySize)
			svc := unitdocs.NewService(reg,
				unitdocs.WithFetcher(fetcher),
				unitdocs.WithLogger(app.logger))

			ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Docs.Timeout)
			defer cancel()

			doc, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "\n# %s\n\n%s\n", doc.Title, doc.Markdown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch and render the unit's reference page")
	return cmd
}

// dimensionString renders a unit's dimension vector over the base names,
// e.g. "m*kg/s**2", or "dimensionless".
func dimensionString(u *unit.Unit) string {
	if u.IsDimensionless() {
		return "dimensionless"
	}
	powers := u.Powers()
	names := make(unit.Exponents)
	for i := range powers {
		if !powers[i].IsZero() {
			names[unit.BaseNames[i]] = powers[i]
		}
	}
	return unit.New(names, 1, powers).Name()
}

func listCmd(app *appState) *cobra.Command {
	var prefixed bool
	var dimension string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}

			var filter *unit.Unit
			if dimension != "" {
				filter, err = reg.Resolve(dimension)
				if err != nil {
					return err
				}
			}

			units := reg.Units()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range reg.List() {
				u := units[name]
				if u.IsPrefixed() && !prefixed {
					continue
				}
				if filter != nil && u.Powers() != filter.Powers() {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, u.VerboseName(), dimensionString(u))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&prefixed, "prefixed", false, "Include prefixed variants")
	cmd.Flags().StringVar(&dimension, "dimension", "", "Only units sharing the dimension of this expression")
	return cmd
}

func defsCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defs",
		Short: "Work with unit definition documents",
	}
	cmd.AddCommand(defsValidateCmd(app), defsWatchCmd(app))
	return cmd
}

// defsPatterns returns the configured glob patterns or the package
// defaults.
func defsPatterns(app *appState) []string {
	if len(app.cfg.Defs.Patterns) > 0 {
		return app.cfg.Defs.Patterns
	}
	return defs.DefaultPatterns
}

// validateFile loads one document and installs it into a scratch registry,
// catching schema errors, duplicate names and unresolvable expressions.
func validateFile(app *appState, path string) error {
	doc, err := defs.LoadFile(path)
	if err != nil {
		return err
	}
	scratch, err := buildBaseRegistry(app.cfg)
	if err != nil {
		return err
	}
	return doc.Install(scratch)
}

func defsValidateCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [PATH]",
		Short: "Validate definition documents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			files, err := defs.DiscoverFiles(root, defsPatterns(app))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no definition documents found")
				return nil
			}

			// One shared scratch registry so cross-file duplicates and
			// definitions chained across files both surface.
			scratch, err := buildBaseRegistry(app.cfg)
			if err != nil {
				return err
			}

			var failed int
			for _, file := range files {
				doc, err := defs.LoadFile(file)
				if err == nil {
					err = doc.Install(scratch)
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", file, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s (%d units)\n", file, len(doc.Units))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(files))
			}
			return nil
		},
	}
}

func defsWatchCmd(app *appState) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [PATH]",
		Short: "Watch definition documents and revalidate on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			w, err := defs.NewWatcher(debounce, app.logger)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Add(root); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			w.Start(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", root)

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-w.Events():
					if !ok {
						return nil
					}
					if ev.Op == defs.OpRemove {
						fmt.Fprintf(cmd.OutOrStdout(), "GONE %s\n", ev.Path)
						continue
					}
					if err := validateFile(app, ev.Path); err != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", ev.Path, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "OK   %s\n", ev.Path)
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce window for file events")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
