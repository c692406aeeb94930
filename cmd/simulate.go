package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evannini/bbcal/internal/calib"
	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/plot"
	"github.com/evannini/bbcal/internal/sim"
)

var (
	simDataPath string
	simDt       float64
	simSetFlags []string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a recorded experiment through the simulator",
	Long: `Feeds a dataset's commanded angles through the ball-and-beam simulator
from the dataset's derived initial state and prints the measured and
simulated position traces with the resulting squared error.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simDataPath, "data", "", "Dataset path (required)")
	simulateCmd.Flags().Float64Var(&simDt, "dt", sim.DefaultDt, "Sample period [s]")
	simulateCmd.Flags().StringArrayVar(&simSetFlags, "set", nil, "Simulator parameter override name=value (repeatable)")

	simulateCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(simulateCmd)
}

// replay runs one dataset through the simulator the same way the objective
// evaluator does: commanded angles converted to radians, initial state
// derived from the first two samples.
func replay(simulator sim.Simulator, table *dataset.Table, cmdNoise, outNoise sim.NoiseFunc) (*sim.Trace, error) {
	theta := table.Theta
	command := func(step int) float64 { return theta[step] * math.Pi / 180 }
	init := calib.InitialState(table, simulator.Dt())
	return simulator.Simulate(command, cmdNoise, outNoise, table.Len(), init)
}

func applySetFlags(simulator sim.Simulator, flags []string) error {
	for _, kv := range flags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("bad --set %q, expected name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("bad --set value %q: %w", kv, err)
		}
		simulator.SetParam(name, v)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	table, err := dataset.Load(simDataPath)
	if err != nil {
		return err
	}

	simulator := sim.NewBBTheta(simDt)
	if err := applySetFlags(simulator, simSetFlags); err != nil {
		return err
	}

	trace, err := replay(simulator, table, nil, nil)
	if err != nil {
		return err
	}

	var sse float64
	measured := make([]float64, table.Len())
	for t := 0; t < table.Len(); t++ {
		measured[t] = table.Pos[t] / 100
		d := trace.Y[t] - measured[t]
		sse += d * d
	}

	fmt.Printf("%s: %d steps at dt=%.3f, squared error %.6g\n", table.Path, table.Len(), simDt, sse)
	fmt.Println(plot.Sparkline(measured, "measured position [m]"))
	fmt.Println(plot.Sparkline(trace.Y[:table.Len()], "simulated position [m]"))
	return nil
}
