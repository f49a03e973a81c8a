package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mrled/stackcalc/internal/config"
	"github.com/mrled/stackcalc/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// appConfig is loaded before any subcommand runs
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "stackcalc",
	Short: "Stackcalc runs stack-based exercises",
	Long: `A command-line tool for stack-based exercises: checking that parentheses
in an expression are balanced, and computing factorials by draining a stack.

Results can optionally be recorded to a JSON file or a DynamoDB table and
reviewed later with the show command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv(config.EnvConfigPath)
		}

		cfg, err := config.Load(path)
		if err != nil {
			return UsageError{err}
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		appConfig = cfg

		logCfg := logger.CLIConfig()
		logCfg.Level = cfg.Log.Level
		logCfg.Format = cfg.Log.Format
		log := logger.WithExecutable(logger.NewLogger(logCfg), "stackcalc")
		logger.SetDefault(log)

		return nil
	},
}

// ExecuteContext runs the root command with ctx available to subcommands
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or TOML config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError{fmt.Errorf("%w\n\n%s", err, cmd.UsageString())}
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "exercises", Title: "Exercises:"},
		&cobra.Group{ID: "history", Title: "History:"},
	)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(factorialCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(forgetCmd)
}
