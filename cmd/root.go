package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/vaxviz-cli/internal/config"
	"github.com/KaramelBytes/vaxviz-cli/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "vaxviz",
	Short: "vaxviz: interactive charts of UNICEF vaccination coverage",
	Long: `vaxviz joins a UNICEF indicator table with country metadata and writes
four standalone HTML charts: the yearly trend, a world map of the latest year,
GDP per capita against coverage, and the countries with the strongest growth.

Running vaxviz without a subcommand is the same as "vaxviz render".`,
	SilenceUsage: true,
	RunE:         runRender,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vaxviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.SilenceErrors = true
	addRenderFlags(rootCmd)
}

func loadConfig() {
	cfg, cfgErr = cfgpkg.Load(cfgFile)
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, cfgErr
		}
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// newLogger builds the stderr logger for a command run.
func newLogger(cmd *cobra.Command, c *cfgpkg.Global) zerolog.Logger {
	level := c.LogLevel
	if debug {
		level = "debug"
	}
	return logging.New(cmd.ErrOrStderr(), level)
}
