package plot

import "github.com/guptarohit/asciigraph"

// Sparkline renders a trace as a terminal graph.
func Sparkline(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
