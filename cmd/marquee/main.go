package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marquee/internal/config"
	"marquee/internal/logging"
)

const appVersion = "0.1.0"

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string
	language   string
	timeout    time.Duration

	// Logger for one-shot commands
	logger *zap.Logger

	// Resolved configuration
	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "marquee",
	Short:   "marquee - Terminal movie browser for the TMDB catalog",
	Version: appVersion,
	Long: `marquee is a terminal UI for browsing movie metadata from TMDB.

It renders paginated discovery and search results as a grid of cards,
with client-side sorting by release date or rating and a detail view
per title.

Run without arguments to start the interactive browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = *loaded
		applyFlagOverrides(&cfg)

		if logDir, dirErr := cfg.LogDir(); dirErr != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", dirErr)
		} else if initErr := logging.Initialize(logging.Options{
			Enabled:    cfg.Logging.Enabled,
			Dir:        logDir,
			Level:      cfg.Logging.Level,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		}); initErr != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", initErr)
		}

		// Skip the console logger for interactive mode (it has its own UI)
		if cmd.Use == "marquee" && cmd.CalledAs() == "marquee" {
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive browser
		return runBrowse(cfg)
	},
}

// resolveConfigPath returns the --config flag value or the default
// location under the user's home.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// applyFlagOverrides layers command-line flags over the loaded config.
func applyFlagOverrides(c *config.Config) {
	if apiKey != "" {
		c.TMDB.APIKey = apiKey
	}
	if language != "" {
		c.TMDB.Language = language
	}
	if timeout > 0 {
		c.TMDB.Timeout = timeout.String()
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "TMDB API key (or set TMDB_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.marquee/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "Result language, e.g. en-US")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout override")

	// One-shot query flags
	searchCmd.Flags().IntVar(&startPage, "page", 1, "First page to fetch")
	searchCmd.Flags().IntVar(&pageCount, "pages", 1, "Number of pages to fetch")
	searchCmd.Flags().StringVar(&sortFlag, "sort", "none", "Sort key: none, date-asc, date-desc, rating-asc, rating-desc")
	discoverCmd.Flags().IntVar(&startPage, "page", 1, "First page to fetch")
	discoverCmd.Flags().IntVar(&pageCount, "pages", 1, "Number of pages to fetch")
	discoverCmd.Flags().StringVar(&sortFlag, "sort", "none", "Sort key: none, date-asc, date-desc, rating-asc, rating-desc")

	// Config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// Add commands to root
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
