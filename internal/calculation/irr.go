package calculation

import "math"

// npv discounts evenly spaced year-end cash flows at the given rate,
// with the first flow at time zero.
func npv(rate float64, flows []float64) float64 {
	total := 0.0
	compound := 1.0
	for _, f := range flows {
		total += f / compound
		compound *= 1 + rate
	}
	return total
}

func npvDerivative(rate float64, flows []float64) float64 {
	total := 0.0
	for i, f := range flows {
		if i == 0 {
			continue
		}
		total -= float64(i) * f / math.Pow(1+rate, float64(i+1))
	}
	return total
}

// irr solves npv(rate, flows) == 0 with Newton iteration, falling back
// to bisection when Newton wanders out of the domain. Returns false
// when the flows admit no root above -100%.
func irr(flows []float64) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}

	rate := 0.1
	for i := 0; i < 100; i++ {
		v := npv(rate, flows)
		if math.Abs(v) < 1e-10 {
			return rate, true
		}
		d := npvDerivative(rate, flows)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := rate - v/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			break
		}
		if math.Abs(next-rate) < 1e-12 {
			return next, true
		}
		rate = next
	}

	return irrBisect(flows)
}

// irrBisect scans for a sign change on (-1, 10] and bisects it.
func irrBisect(flows []float64) (float64, bool) {
	lo, hi := -0.999999, 10.0
	vLo := npv(lo, flows)
	vHi := npv(hi, flows)

	if vLo*vHi > 0 {
		// Walk the range for an interior sign change.
		found := false
		prev := lo
		prevV := vLo
		for r := lo + 0.01; r <= hi; r += 0.01 {
			v := npv(r, flows)
			if prevV*v <= 0 {
				lo, vLo = prev, prevV
				hi = r
				found = true
				break
			}
			prev, prevV = r, v
		}
		if !found {
			return 0, false
		}
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		v := npv(mid, flows)
		if math.Abs(v) < 1e-10 || hi-lo < 1e-12 {
			return mid, true
		}
		if vLo*v <= 0 {
			hi = mid
		} else {
			lo, vLo = mid, v
		}
	}
	return (lo + hi) / 2, true
}
