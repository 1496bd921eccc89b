package tool

import "math"

// NoKerning is the value some hosts return for a pair without kerning.
const NoKerning = 0xFFFF

// CurrentKerning returns the kerning of the ordered pair, with missing
// pairs and the NoKerning sentinel both reported as ok == false.
func CurrentKerning(h Host, first, second Layer, dir Direction) (float64, bool) {
	v, ok := h.Kerning(first, second, dir)
	if !ok || v >= NoKerning {
		return 0, false
	}
	return v, true
}

// ApplyKerningDelta adds delta to the kerning of the ordered pair in
// direction dir, rounded to a multiple of step, and returns the value
// written. A zero delta never writes.
func ApplyKerningDelta(h Host, first, second Layer, delta, step float64, dir Direction) float64 {
	existing, ok := CurrentKerning(h, first, second, dir)
	if delta == 0 {
		return existing
	}
	var v float64
	if ok {
		v = roundTo(existing+delta, step)
	} else {
		v = roundTo(delta, step)
	}
	h.SetKerning(first, second, dir, v)
	return v
}

func roundTo(v, step float64) float64 {
	if step <= 0 {
		step = 1
	}
	r := math.Round(v/step) * step
	if r == 0 {
		// no negative zero
		return 0
	}
	return r
}
