package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"notary-crawler/internal/config"
	"notary-crawler/internal/scrape"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		reportUnlogged(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loggedError marks an error the command already reported through logrus.
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

// reportUnlogged prints err unless it was already logged.
func reportUnlogged(w io.Writer, err error) {
	var l loggedError
	if errors.As(err, &l) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

type globalFlags struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "notaries",
		Short:         "Crawl the notary directory and export a deduplicated CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, g)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $NOTARIES_DATA_DIR/config.yml)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(configCmd(&g), historyCmd(&g))
	return cmd
}

// dataDir is where config.yml, the lock file, the archive and a relative
// CSV output live.
func dataDir() (string, error) {
	dir := os.Getenv("NOTARIES_DATA_DIR")
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// loadConfig resolves the config file, bootstrapping the default one in the
// data dir when no path is given, and applies NOTARIES_* overrides.
func loadConfig(g globalFlags) (config.Config, string, error) {
	dir, err := dataDir()
	if err != nil {
		return config.Config{}, "", err
	}

	path := g.configPath
	if path == "" {
		path, err = config.EnsureUserConfig(dir)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
		return config.Config{}, "", err
	}

	cfg.Archive.DBPath = inDir(dir, cfg.Archive.DBPath)
	cfg.Output.CSVPath = inDir(dir, cfg.Output.CSVPath)
	return cfg, dir, nil
}

func inDir(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func runCrawl(cmd *cobra.Command, g globalFlags) error {
	log := newLogger(cmd.ErrOrStderr(), g.debug)

	cfg, dir, err := loadConfig(g)
	if err != nil {
		log.WithError(err).Error("[config] unusable")
		return loggedError{err}
	}

	unlock, err := lockRun(dir)
	if err != nil {
		log.WithError(err).Error("[crawl] not started")
		return loggedError{err}
	}
	defer unlock()

	log.WithFields(logrus.Fields{
		"base":   cfg.Site.BaseURL,
		"city":   cfg.Site.City,
		"pages":  cfg.Site.PageNb + 1,
		"policy": cfg.Crawl.OnFetchError,
	}).Info("[crawl] starting")

	bar := newProgressBar(cmd.ErrOrStderr(), "Progress")
	sum, err := scrape.RunOnce(cmd.Context(), cfg, log, scrape.Options{Progress: bar.Update})
	bar.Done()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("[crawl] interrupted")
		} else {
			log.WithError(err).Error("[crawl] failed")
		}
		return loggedError{err}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Notaries found: %d\n", sum.Candidates)
	fmt.Fprintf(out, "Notaries after dedup: %d\n", sum.Kept)
	fmt.Fprintf(out, "Elapsed: %s\n", sum.Elapsed)
	return nil
}
