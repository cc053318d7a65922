// Command recipe-finder ranks recipes by how well their ingredients match a
// comma-separated ingredient list, from the console, a terminal UI or HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/config"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	cfgPath     string
	datasetFlag string
	logLevel    string

	appCfg *config.AppConfig
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

var rootCmd = &cobra.Command{
	Use:   "recipe-finder",
	Short: "Find recipes that match the ingredients you have",
	Long: `recipe-finder indexes a recipe dataset (CSV, JSON or SQLite) as a bag of
ingredient words and ranks recipes by cosine similarity to your ingredient list.

Configuration is read from --config, ./config.yaml or
~/.config/recipe-finder/config.yaml, then overridden by RECIPES_DATASET,
RECIPES_ADDR, PORT, LOG_LEVEL and LOG_FORMAT (a .env file is honoured).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "Recipe dataset path (overrides config and RECIPES_DATASET)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config and LOG_LEVEL)")
	rootCmd.Version = Version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var (
		cfg *config.AppConfig
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}
	cfg.ApplyEnv()
	if datasetFlag != "" {
		cfg.Dataset.Path = datasetFlag
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return withExitCode(ExitConfigError, err)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	appCfg = cfg
	return nil
}
