package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"teamforge/internal/api"
	"teamforge/internal/config"
	"teamforge/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "teamforge",
	Short: "teamforge - team recommendation client",
	Long: `teamforge browses the hero and skill catalogs of a team recommendation
service, asks it for ranked teams and breaks down how well a team fits together.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func init() {
	// Assigned here rather than in the literal to break the rootCmd <-> setup
	// initialization cycle.
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .teamforge/config.yaml, then ~/.teamforge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Service base URL (overrides config and TEAMFORGE_API_URL)")

	rootCmd.AddCommand(heroesCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(synergyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// resolveConfigPath returns the --config value or the default location.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// setup loads the configuration and, for headless commands, the console
// logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if verbose {
		loaded.Logging.DebugMode = true
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	// The interactive interface owns the terminal and logs to files only.
	if cmd == rootCmd {
		logger = zap.NewNop()
		return nil
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.Named(string(logging.CategoryCLI))
	return nil
}

// newClient builds the gateway for headless commands.
func newClient() *api.Client {
	return api.NewClient(cfg, logger.Named("api"))
}

// commandContext bounds a headless command by the configured API timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 2*cfg.GetAPITimeout())
}
