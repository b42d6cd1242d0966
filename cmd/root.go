package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dxtutor/internal/app"
	"github.com/abhisek/dxtutor/internal/config"
	"github.com/abhisek/dxtutor/internal/logging"
)

// runtimeCfg is the configuration resolved for the running command.
var runtimeCfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dxtutor",
	Short: "Diagnostic reasoning tutor for temporomandibular disorders",
	Long: "dxtutor retrieves similar reference cases for a clinical note, walks the ICOP\n" +
		"diagnosis taxonomy and scores a learner's diagnosis and features against the answer key.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite attempt log (overrides DXTUTOR_DB env var)")
	pf.String("data", "", "Path to a JSON dataset replacing the built-in one (overrides DXTUTOR_DATA)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides DXTUTOR_LOG_LEVEL)")
	pf.String("log-format", "", "Log format: text or json (overrides DXTUTOR_LOG_FORMAT)")

	rootCmd.AddCommand(retrieveCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// initRuntime loads .env and the environment, applies flag overrides and
// sets up logging.
func initRuntime(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"db", &cfg.DBPath},
		{"data", &cfg.DataPath},
		{"log-level", &cfg.LogLevel},
		{"log-format", &cfg.LogFormat},
	}
	for _, o := range overrides {
		if v, _ := flags.GetString(o.flag); v != "" {
			*o.dst = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logging.Init(cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	runtimeCfg = cfg
	return nil
}

// openApp builds the application for a command. withStore opens the
// attempt log.
func openApp(withStore bool) (*app.App, error) {
	if runtimeCfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return app.New(app.Options{Config: runtimeCfg, WithStore: withStore})
}
