package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evannini/bbcal/internal/calib"
	"github.com/evannini/bbcal/internal/config"
	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/opt"
	"github.com/evannini/bbcal/internal/plot"
	"github.com/evannini/bbcal/internal/sim"
	"github.com/evannini/bbcal/internal/store"
)

var (
	fitConfigPath string
	fitDataPaths  []string
	fitMethod     string
	fitStoreDir   string
	fitPlotDir    string
	fitApply      bool
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Calibrate simulator parameters against recorded experiments",
	Long: `Searches the configured parameter subset for the values that minimize
the summed squared error between simulated and measured ball position
over all training datasets.`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitConfigPath, "config", "", "Calibration config file (YAML); defaults apply if omitted")
	fitCmd.Flags().StringSliceVar(&fitDataPaths, "data", nil, "Dataset paths (overrides the config's dataset list)")
	fitCmd.Flags().StringVar(&fitMethod, "method", "", "Minimization method: neldermead, bfgs, cg (overrides config)")
	fitCmd.Flags().StringVar(&fitStoreDir, "store", "", "Directory to persist the result under a fresh run ID")
	fitCmd.Flags().StringVar(&fitPlotDir, "plot-dir", "", "Directory for per-dataset comparison figures using the fitted values")
	fitCmd.Flags().BoolVar(&fitApply, "apply", false, "Leave the fitted values applied to the simulator used for figures")

	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if fitConfigPath != "" {
		loaded, err := config.Load(fitConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if len(fitDataPaths) > 0 {
		cfg.Datasets = fitDataPaths
	}
	if fitMethod != "" {
		cfg.Method = fitMethod
	}
	if len(cfg.Datasets) == 0 {
		return fmt.Errorf("no datasets given (use --data or a config file)")
	}

	simulator := sim.NewBBTheta(cfg.Dt)
	for name, value := range cfg.SimOverrides {
		simulator.SetParam(name, value)
	}
	for _, p := range cfg.Params {
		if p.Init != nil {
			simulator.SetParam(p.Name, *p.Init)
		}
	}

	tables, err := dataset.LoadAll(cfg.Datasets)
	if err != nil {
		return err
	}
	slog.Info("datasets loaded", "count", len(tables))

	cmdNoise, err := cfg.CommandNoise.NoiseFunc()
	if err != nil {
		return fmt.Errorf("command noise: %w", err)
	}
	outNoise, err := cfg.OutputNoise.NoiseFunc()
	if err != nil {
		return fmt.Errorf("output noise: %w", err)
	}

	optimizer, err := opt.NewGonum(cfg.Method)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := calib.Fit(simulator, tables, cfg.ParamNames(), optimizer, cfg.Bounds(), cmdNoise, outNoise)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Calibration %s after %s (%d evaluations, status: %s)\n",
		successWord(result.Success), elapsed.Round(time.Millisecond), result.Evaluations, result.Status)
	fmt.Printf("Objective: %.6g\n", result.Objective)
	for i, name := range result.Names {
		fmt.Printf("  %-14s %.8g\n", name, result.Values[i])
	}

	if fitStoreDir != "" {
		fs, err := store.NewFSStore(fitStoreDir)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		if err := fs.Save(runID, result); err != nil {
			return err
		}
		fmt.Printf("Saved result as run %s\n", runID)
	}

	if fitPlotDir != "" || fitApply {
		result.Apply(simulator)
	}
	if fitPlotDir != "" {
		if err := renderComparisons(simulator, tables, cmdNoise, outNoise, fitPlotDir); err != nil {
			return err
		}
	}
	return nil
}

func successWord(ok bool) string {
	if ok {
		return "converged"
	}
	return "did not converge"
}

func renderComparisons(simulator sim.Simulator, tables []*dataset.Table, cmdNoise, outNoise sim.NoiseFunc, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create figure directory: %w", err)
	}
	beamLength := 0.0
	if l, ok := simulator.Param("l"); ok {
		beamLength = l
	}
	for _, table := range tables {
		trace, err := replay(simulator, table, cmdNoise, outNoise)
		if err != nil {
			return err
		}
		out := filepath.Join(dir, figureName(table.Path))
		c := &plot.Comparison{
			Table:      table,
			Dt:         simulator.Dt(),
			Simulated:  trace,
			BeamLength: beamLength,
		}
		if err := c.RenderPNG(out); err != nil {
			return err
		}
		slog.Info("comparison figure written", "dataset", table.Path, "figure", out)
	}
	return nil
}

func figureName(dataPath string) string {
	base := filepath.Base(dataPath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base + ".png"
}
