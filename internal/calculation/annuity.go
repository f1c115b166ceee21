package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// scaleCap bounds derived multiples and durations so degenerate inputs
// produce a recognizable sentinel instead of an overflow.
const scaleCap = 99.99999999

// AnnuityFactor returns the level payout fraction that exhausts a
// balance over the given number of years at the given return rate.
// A zero rate degrades to straight-line 1/years.
func AnnuityFactor(rate decimal.Decimal, years int) decimal.Decimal {
	yearsDec := decimal.NewFromInt(int64(years))
	if rate.IsZero() {
		return decimal.NewFromInt(1).Div(yearsDec)
	}
	one := decimal.NewFromInt(1)
	discount := one.Div(one.Add(rate).Pow(yearsDec))
	return rate.Div(one.Sub(discount))
}

// ConstantDistribution is the level annual payout for a balance under
// the annuity factor.
func ConstantDistribution(balance, factor decimal.Decimal) decimal.Decimal {
	return balance.Mul(factor)
}

// ProjectBalance returns the end-of-year balance after yearOffset+1
// years of growth at rate with a level distribution withdrawn at each
// year end.
func ProjectBalance(balance, rate, distribution decimal.Decimal, yearOffset int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	periods := decimal.NewFromInt(int64(yearOffset + 1))
	growth := one.Add(rate).Pow(periods)
	if rate.IsZero() {
		return balance.Sub(distribution.Mul(periods))
	}
	// Withdrawals accumulate as a geometric series alongside growth.
	annuitized := distribution.Mul(growth.Sub(one)).Div(rate)
	return balance.Mul(growth).Sub(annuitized)
}

// BaseDuration is the number of years it takes the portfolio return to
// reproduce the total annuitized payout, used later to price a
// synthetic Roth contribution. Non-positive rates degrade to half the
// payout horizon.
func BaseDuration(rate decimal.Decimal, years int) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(int64(years)).Div(decimal.NewFromInt(2))
	}

	multiple := AnnuityFactor(rate, years).Mul(decimal.NewFromInt(int64(years)))
	m, _ := multiple.Float64()
	if m <= 0 {
		return decimal.Zero
	}
	r, _ := rate.Float64()
	dur := math.Log(m) / math.Log(1+r)
	return roundCapped(dur)
}

// roundCapped rounds a float to eight places and caps it at the scale
// sentinel.
func roundCapped(v float64) decimal.Decimal {
	if v > scaleCap {
		v = scaleCap
	}
	return decimal.NewFromFloat(v).Round(8)
}
