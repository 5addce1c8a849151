package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/arnauq/qwind/internal/radiation"
)

// TemperatureProfile samples the disc temperature [K] at n radii evenly
// spaced over [rIn, rOut].
func TemperatureProfile(sed radiation.SED, rIn, rOut float64, n int) []float64 {
	if n < 2 || rOut <= rIn {
		return nil
	}
	out := make([]float64, n)
	dr := (rOut - rIn) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(sed.DiskTemperature4(rIn+float64(i)*dr), 0.25)
	}
	return out
}

// FluxPlot renders the per-streamline mass flux against launch radius.
// Lines that fell back plot as zero.
func FluxPlot(fluxes []float64, caption string) string {
	if len(fluxes) < 2 {
		return ""
	}
	return asciigraph.Plot(fluxes,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
}
