package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/plot"
	"github.com/evannini/bbcal/internal/sim"
)

var (
	plotDataPath string
	plotOut      string
	plotTitle    string
	plotDt       float64
	plotWithSim  bool
	plotSetFlags []string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a recorded experiment as a figure",
	Long: `Renders a dataset's measured position and commanded angle to a PNG
figure, optionally overlaid with the simulator's prediction for the same
commands and initial state.`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotDataPath, "data", "", "Dataset path (required)")
	plotCmd.Flags().StringVar(&plotOut, "out", "comparison.png", "Output figure path")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "Figure title (defaults to the dataset path)")
	plotCmd.Flags().Float64Var(&plotDt, "dt", sim.DefaultDt, "Sample period [s]")
	plotCmd.Flags().BoolVar(&plotWithSim, "sim", false, "Overlay the simulated trajectory")
	plotCmd.Flags().StringArrayVar(&plotSetFlags, "set", nil, "Simulator parameter override name=value (repeatable)")

	plotCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	table, err := dataset.Load(plotDataPath)
	if err != nil {
		return err
	}

	c := &plot.Comparison{Table: table, Dt: plotDt, Title: plotTitle}

	if plotWithSim {
		simulator := sim.NewBBTheta(plotDt)
		if err := applySetFlags(simulator, plotSetFlags); err != nil {
			return err
		}
		trace, err := replay(simulator, table, nil, nil)
		if err != nil {
			return err
		}
		c.Simulated = trace
		if l, ok := simulator.Param("l"); ok {
			c.BeamLength = l
		}
	}

	if err := c.RenderPNG(plotOut); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", plotOut)
	return nil
}
