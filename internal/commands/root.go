// internal/commands/root.go
package benchmerge

import (
	"errors"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchmerge/benchmerge/internal/appconfig"
	"github.com/benchmerge/benchmerge/internal/logging"
	"github.com/benchmerge/benchmerge/internal/pipeline"
)

var (
	cfgFile       string
	scenarioName  string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchmerge",
	Short: "benchmerge — consolidate per-run benchmark artifacts into comparison tables and charts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			// Display-only commands still work without a config file;
			// anything that needs one fails when it asks for it.
			if errors.Is(err, appconfig.ErrNoConfig) {
				return logging.Init("")
			}
			return err
		}

		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir = viper.GetString("output-dir")
		}
		if cmd.Flags().Changed("logFile") {
			cfg.LogFile = viper.GetString("logFile")
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = viper.GetBool("debug")
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			pp.Println(cfg)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().StringVarP(&scenarioName, "scenario", "s", "", "scenario to operate on (defaults to the sole configured scenario)")

	rootCmd.PersistentFlags().String("output-dir", "", "directory consolidated artifacts are written to")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("output-dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// currentScenario resolves the scenario named by --scenario against the
// loaded configuration.
func currentScenario() (appconfig.Scenario, error) {
	cfg := GetConfig()
	if cfg == nil {
		return appconfig.Scenario{}, fmt.Errorf("configuration not loaded")
	}
	return cfg.Scenario(scenarioName)
}

// newPipeline opens a pipeline over the loaded configuration. Callers own
// the Close.
func newPipeline() (*pipeline.Pipeline, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return pipeline.New(*cfg)
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
