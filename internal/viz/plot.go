package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/matpoint/internal/dynamo"
)

var componentNames = [3]string{"x", "y", "z"}

// PlotComponents renders one asciigraph per position and velocity component.
// Constant series are skipped.
func PlotComponents(result *dynamo.Result, width, height int) string {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		pos := make([]float64, len(result.Samples))
		vel := make([]float64, len(result.Samples))
		for j, s := range result.Samples {
			pos[j] = s.Position[i]
			vel[j] = s.Velocity[i]
		}
		for _, series := range []struct {
			data    []float64
			caption string
		}{
			{pos, fmt.Sprintf("%s (position)", componentNames[i])},
			{vel, fmt.Sprintf("v_%s (velocity)", componentNames[i])},
		} {
			if isConstant(series.data) {
				continue
			}
			b.WriteString(plot(series.data, series.caption, width, height))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// PlotEnergy renders total energy under force over the run.
func PlotEnergy(result *dynamo.Result, force dynamo.Force, width, height int) string {
	data := make([]float64, 0, len(result.Samples))
	for _, s := range result.Samples {
		p, err := samplePoint(s)
		if err != nil {
			continue
		}
		data = append(data, dynamo.Energy(force, p))
	}
	if len(data) == 0 {
		return ""
	}
	return plot(data, "total energy", width, height)
}

func plot(data []float64, caption string, width, height int) string {
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

func isConstant(data []float64) bool {
	for _, v := range data {
		if v != data[0] {
			return false
		}
	}
	return true
}
