package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tsxlower/internal/config"
	"tsxlower/internal/driver"
	"tsxlower/internal/observ"
	"tsxlower/internal/source"
)

func runTransform(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	cleanup, err := setupDiagnostics(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	ropts, err := reportOptions(cmd)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files, err := driver.Match(pattern)
	if err != nil {
		return err
	}

	if len(files) == 0 && !quiet {
		if err := warn(cmd, ropts, driver.NoMatches(pattern)); err != nil {
			return err
		}
	}

	if clearCache {
		if err := clearTransformCache(opts); err != nil {
			return err
		}
	}
	var result *driver.Result
	switch {
	case len(files) == 0:
		result = &driver.Result{FileSet: source.NewFileSet()}
	case shouldUseTUI(mode, quiet):
		result, err = runWithUI(ctx, "tsxlower "+pattern, files, opts)
	default:
		result, err = runPlain(ctx, files, opts)
	}
	if err != nil {
		if result != nil {
			return report(cmd, ropts, err, result.FileSet)
		}
		return err
	}

	if showTimings {
		printTimings(cmd.ErrOrStderr(), result, ropts.Pretty)
	}
	if !quiet {
		cached := 0
		for _, f := range result.Files {
			if f.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lowered %d file(s), %d from cache, in %.1f ms\n",
			len(result.Files), cached, observ.Millis(result.Elapsed))
	}
	return nil
}

func runPlain(ctx context.Context, files []string, opts driver.Options) (*driver.Result, error) {
	d, err := driver.New(opts)
	if err != nil {
		return nil, err
	}
	return d.RunFiles(ctx, files)
}

func clearTransformCache(opts driver.Options) error {
	d, err := driver.New(opts)
	if err != nil {
		return err
	}
	if d.Cache() == nil {
		return nil
	}
	if err := d.Cache().Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// loadConfig resolves --config, falling back to the nearest tsxlower.toml.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.Resolve(explicit, cwd)
}

// driverOptions builds driver options from the configuration and flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	maxErrors, err := cmd.Root().PersistentFlags().GetUint("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts := driver.Options{Config: cfg, MaxErrors: maxErrors}
	if f := cmd.Flags().Lookup("jobs"); f != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return driver.Options{}, fmt.Errorf("--jobs must not be negative, got %d", jobs)
		}
		opts.Jobs = jobs
	}
	return opts, nil
}
