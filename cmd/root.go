package cmd

import (
	"os"

	cfgpkg "github.com/KaramelBytes/vizadvisor-cli/internal/config"
	"github.com/KaramelBytes/vizadvisor-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "vizadvisor",
	Short: "VizAdvisor CLI: profile tabular data and recommend charts and metrics",
	Long: `VizAdvisor profiles CSV/TSV/XLSX datasets, classifies each column, detects the business domain
and recommends charts, metrics, targets and groupings. The sales command serves
time-series and department views over a weekly sales dataset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vizadvisor/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: read-only commands run on defaults via settings()
		printWarning(os.Stderr, "failed to load config: %v", err)
	} else {
		cfg = c
	}

	s := settings()
	level := s.LogLevel
	if debug {
		level = "debug"
	}
	if err := logging.Setup(os.Stderr, level, s.LogFormat); err != nil {
		printWarning(os.Stderr, "%v", err)
	}
}

// settings returns the loaded configuration or the defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}
