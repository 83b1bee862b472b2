package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/mhdash/internal/config"
	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/logging"
	"github.com/KaramelBytes/mhdash/internal/survey"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataFlag string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mhdash",
	Short: "Mental health survey dashboard: Low/High factor breakdowns from survey data",
	Long: `mhdash loads a mental health survey table (CSV, TSV or XLSX), recodes the
ordinal answers to scores, bins each factor into Low and High within the selected
subset and reports the counts as tables, charts, workbooks or an HTTP dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mhdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "survey data file (overrides config data_file)")
}

func loadConfig() {
	// .env is optional; MHDASH_* variables may live there
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v (using defaults)\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("data") && dataFlag != "" {
		cfg.DataFile = dataFlag
	}
	logger = logging.Must(cfg.LogLevel, debug)
}

func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

func newDashboard() *dashboard.Dashboard {
	return dashboard.New(settings().DashboardOptions())
}

// loadTable reads the configured survey file.
func loadTable() (*survey.Table, error) {
	path := settings().DataFile
	if path == "" {
		return nil, fmt.Errorf("no data file configured (use --data or `mhdash config set data_file <path>`)")
	}
	t, err := survey.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("survey loaded", zap.String("path", path), zap.Int("rows", t.Len()), zap.Int("columns", len(t.Columns)))
	return t, nil
}
