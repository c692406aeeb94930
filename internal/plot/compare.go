// Package plot renders recorded and simulated trajectories. Rendering only;
// no decision logic lives here.
package plot

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/sim"
)

const radToDeg = 180 / math.Pi

// Comparison describes one recorded experiment and, optionally, its
// simulated counterpart.
type Comparison struct {
	Table      *dataset.Table
	Dt         float64
	Simulated  *sim.Trace // may be nil: plot the recording alone
	Title      string
	BeamLength float64 // beam length [m] for position axis limits; 0 = auto
}

// RenderPNG writes a two-panel figure (position above, commanded angle
// below) to path.
func (c *Comparison) RenderPNG(path string) error {
	n := c.Table.Len()

	posPlot := plot.New()
	posPlot.Title.Text = c.Title
	if posPlot.Title.Text == "" {
		posPlot.Title.Text = c.Table.Path
	}
	posPlot.X.Label.Text = "Time [s]"
	posPlot.Y.Label.Text = "Position [m]"

	measured := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		measured[i].X = float64(i) * c.Dt
		measured[i].Y = c.Table.Pos[i] / 100
	}
	if err := addLine(posPlot, "Measured position [m]", measured, 0); err != nil {
		return err
	}

	thetaPlot := plot.New()
	thetaPlot.X.Label.Text = "Time [s]"
	thetaPlot.Y.Label.Text = "Angle [deg]"

	commanded := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		commanded[i].X = float64(i) * c.Dt
		commanded[i].Y = c.Table.Theta[i]
	}
	if err := addLine(thetaPlot, "Commanded angle (servo) [deg]", commanded, 0); err != nil {
		return err
	}

	if c.Simulated != nil {
		m := min(n, len(c.Simulated.Y))
		simulated := make(plotter.XYs, m)
		actual := make(plotter.XYs, m)
		for i := 0; i < m; i++ {
			simulated[i].X = c.Simulated.T[i]
			simulated[i].Y = c.Simulated.Y[i]
			actual[i].X = c.Simulated.T[i]
			actual[i].Y = c.Simulated.U[i] * radToDeg
		}
		if err := addLine(posPlot, "Simulated position [m]", simulated, 1); err != nil {
			return err
		}
		if err := addLine(thetaPlot, "Actual offset angle (servo) [deg]", actual, 1); err != nil {
			return err
		}
	}

	if c.BeamLength > 0 {
		posPlot.Y.Min = -c.BeamLength/2 - 0.05
		posPlot.Y.Max = c.BeamLength/2 + 0.05
	}
	thetaPlot.Y.Min = -55
	thetaPlot.Y.Max = 55

	img := vgimg.New(vg.Points(600), vg.Points(450))
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1}
	canvases := plot.Align([][]*plot.Plot{{posPlot}, {thetaPlot}}, tiles, dc)
	posPlot.Draw(canvases[0][0])
	thetaPlot.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	return nil
}

func addLine(p *plot.Plot, label string, xys plotter.XYs, colorIdx int) error {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build line %q: %w", label, err)
	}
	line.Color = plotutil.Color(colorIdx)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}
