package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/config"
)

var (
	configPath string
	logLevel   string

	// cfg and projectRoot are set before any subcommand runs.
	cfg         = config.Default()
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:   "sectored",
	Short: "Sectored - geometry toolkit for sector based levels",
	Long: `Sectored inspects, validates and bakes sector based 2.5D levels.
It resolves player movement against level geometry, triangulates
sectors with nested holes and renders heightmap snapshots.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug/info/warn/error), overrides the config")
}

func loadConfig() error {
	path := configPath
	if path == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			// No project: run with defaults relative to the working directory.
			projectRoot, _ = os.Getwd()
			return nil
		}
		path = filepath.Join(root, config.FileName)
	}
	projectRoot = filepath.Dir(path)

	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	cfg = loaded
	return nil
}

func setupLogging(cmd *cobra.Command) error {
	name := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		name = logLevel
	}
	level, err := config.ParseLogLevel(name)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// levelsDir returns args[0] when given, else the configured levels directory.
func levelsDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.LevelsPath(projectRoot)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
