package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evannini/bbcal/internal/signal"
	"github.com/evannini/bbcal/internal/sim"
)

var (
	genOut    string
	genShape  string
	genDt     float64
	genTMax   float64
	genOffset float64
	genAngle  float64
	genAngle2 float64
	genAmp    float64
	genPeriod float64
	genT1     float64
	genT2     float64
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Write a synthetic command-signal file for the rig",
	Long: `Generates a commanded-angle sequence (degrees) and writes it in the
comma-decimal format the acquisition program reads. Shapes:

  constant  fixed angle (--angle)
  ramp      linear sweep from --angle to --angle2
  sine      sinusoid with --amp and --period
  steps     --angle for --t1 seconds, --angle2 for --t2, then zero
  sinexp    sine of --period with an exp(t/7) growing envelope`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVar(&genOut, "out", "", "Output file path (required, overwritten)")
	genCmd.Flags().StringVar(&genShape, "shape", "constant", "Signal shape: constant, ramp, sine, steps, sinexp")
	genCmd.Flags().Float64Var(&genDt, "dt", sim.DefaultDt, "Sample period [s]")
	genCmd.Flags().Float64Var(&genTMax, "tmax", 20, "Test duration [s]")
	genCmd.Flags().Float64Var(&genOffset, "offset", 0, "Constant angle offset added to every sample [deg]")
	genCmd.Flags().Float64Var(&genAngle, "angle", 20, "Primary angle [deg]")
	genCmd.Flags().Float64Var(&genAngle2, "angle2", 0, "Secondary angle [deg]")
	genCmd.Flags().Float64Var(&genAmp, "amp", 10, "Sine amplitude [deg]")
	genCmd.Flags().Float64Var(&genPeriod, "period", 5, "Sine period [s]")
	genCmd.Flags().Float64Var(&genT1, "t1", 10, "Duration of the first step stage [s]")
	genCmd.Flags().Float64Var(&genT2, "t2", 2, "Duration of the second step stage [s]")

	genCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	var theta []float64
	switch genShape {
	case "constant":
		theta = signal.Constant(genAngle, genDt, genTMax, genOffset)
	case "ramp":
		theta = signal.Ramp(genAngle, genAngle2, genDt, genTMax, genOffset)
	case "sine":
		theta = signal.Sine(genAmp, genPeriod, genDt, genTMax, genOffset)
	case "steps":
		theta = signal.Steps(genAngle, genAngle2, genT1, genT2, genDt, genTMax, genOffset)
	case "sinexp":
		theta = signal.SinExp(genPeriod, genDt, genTMax, genOffset)
	default:
		return fmt.Errorf("unknown shape: %s", genShape)
	}

	if err := signal.Write(genOut, theta); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d samples, %.1f s at dt=%.3f)\n", genOut, len(theta), genTMax, genDt)
	return nil
}
