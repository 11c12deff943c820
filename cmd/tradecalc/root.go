package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/tradecalc/internal/calc"
	"github.com/dshills/tradecalc/internal/config"
	"github.com/dshills/tradecalc/internal/logging"
	"github.com/dshills/tradecalc/pkg/types"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tradecalc",
	Short: "Construction measurement and unit-conversion calculator",
	Long: `tradecalc converts between length, mass, ton and area units and solves
common trade geometry: roof pitch, rise and run, diagonals and stair layout.

It can be used directly from the command line, served over HTTP, or exposed
to AI assistants as an MCP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, nil)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newDispatcher builds a dispatcher from the loaded config
func newDispatcher() (*calc.Dispatcher, error) {
	d, err := calc.New(calc.Options{
		DefaultUnit:      types.Unit(cfg.Calc.DefaultUnit),
		DefaultPrecision: cfg.Calc.DefaultPrecision,
		MaxPrecision:     cfg.Calc.MaxPrecision,
		BatchWorkers:     cfg.Calc.BatchWorkers,
		MaxBatchSize:     cfg.Calc.MaxBatchSize,
		CacheSize:        cfg.Calc.CacheSize,
		Logger:           logger.Named("calc"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}
	return d, nil
}
