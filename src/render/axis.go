package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice"
// numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n tick marks between [min, max] using nice
// increments (1, 2, 2.5, 5, 10 scaled by powers of ten).
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil((max - min) / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) >= 10 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// decadeTicks produces one labeled tick per decade bucket.
func decadeTicks(decades []int) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(decades)+1)
	for _, d := range decades {
		ticks = append(ticks, chart.Tick{Value: float64(d), Label: fmt.Sprintf("%d", d)})
	}
	if len(ticks) == 1 {
		// go-chart needs a non-zero range; pad one decade out
		ticks = append(ticks, chart.Tick{Value: ticks[0].Value + 10, Label: ""})
	}
	return ticks
}
