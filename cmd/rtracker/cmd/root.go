package cmd

import (
	"fmt"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/coach"
	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/i18n"
	"github.com/rustyeddy/rtracker/internal/logging"
	"github.com/rustyeddy/rtracker/journal"
	"github.com/rustyeddy/rtracker/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "rtracker",
	Short: "A runner R-performance trade journal",
	Long: `rtracker records trades executed with a first close and a runner,
prices them in R against a fixed risk amount, and tracks progress toward a
growth target.

It provides tools for:
  - Recording losses, break-evens, two-part and multi-close wins
  - Win rate, average realized R, drawdown and progress statistics
  - Checking each first close against the target strategy
  - Coaching feedback after every trade
  - CSV, org-mode and PNG equity exports
  - A Prometheus endpoint for the journal statistics`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	dbPath   string
	lang     string
	logLevel string
	profile  string

	cfg    *config.Config
	logger *log.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "message language, e.g. en-US or tr-TR (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "coach profile: standard or multi_close (overrides config)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	if dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = dbPath
	}
	if lang != "" {
		cfg.Display.Locale = lang
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if profile != "" {
		cfg.Coach.Profile = profile
	}

	logger = logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
	return nil
}

// openTracker opens the configured store and loads the tracker from it. opts
// are applied after the configured ones.
func openTracker(opts ...tracker.Option) (*tracker.Tracker, error) {
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	engine, err := coach.ForProfile(cfg.Coach.Profile)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	opts = append([]tracker.Option{
		tracker.WithDefaults(cfg.Strategy),
		tracker.WithLogger(logger),
		tracker.WithEngine(engine),
	}, opts...)
	t, err := tracker.New(store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return t, nil
}

func newRenderer() (*i18n.Renderer, error) {
	return i18n.New(cfg.Display.Locale, cfg.Display.Currency)
}
