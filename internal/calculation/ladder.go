package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// ConversionLadder is the ordered set of conversion scenarios built for
// one run, together with the run-year tax law it was built against.
type ConversionLadder struct {
	Groups []domain.ConversionGroup

	// BreakingBracket is the first ladder bracket the traditional
	// balance could not fill, nil when every rung was climbed. Its
	// rate labels the full-conversion group.
	BreakingBracket *domain.TaxBracket

	// HasStandardDeductionGroup reports whether group 1 is the
	// standard-deduction rung. It is skipped when the starting
	// balance cannot cover the deduction.
	HasStandardDeductionGroup bool

	StandardDeduction domain.StandardDeduction
	Brackets          []domain.TaxBracket
}

// FullConversionBucket is the display label for the full-conversion
// group: the rate of the bracket the ladder broke on, or the top rate
// when every rung was filled.
func (l *ConversionLadder) FullConversionBucket() decimal.Decimal {
	if l.BreakingBracket != nil {
		return l.BreakingBracket.Rate
	}
	if n := len(l.Brackets); n > 0 {
		return l.Brackets[n-1].Rate
	}
	return decimal.Zero
}

// ConversionLadderBuilder enumerates the conversion scenarios to score:
// a no-conversion baseline, a standard-deduction rung, one rung per tax
// bracket the balance can fill, and a full conversion.
type ConversionLadderBuilder struct {
	logger Logger
}

// NewConversionLadderBuilder creates a ladder builder.
func NewConversionLadderBuilder(logger Logger) *ConversionLadderBuilder {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ConversionLadderBuilder{logger: logger}
}

// Build constructs the ladder for the given starting balances. Every
// group's combined balance equals traditional+roth; only the split
// varies.
func (b *ConversionLadderBuilder) Build(traditional, roth decimal.Decimal, stdDed domain.StandardDeduction, brackets []domain.TaxBracket) *ConversionLadder {
	ladder := &ConversionLadder{
		StandardDeduction: stdDed,
		Brackets:          brackets,
	}

	ladder.Groups = append(ladder.Groups, domain.ConversionGroup{
		Num:                0,
		TraditionalSavings: traditional,
		RothSavings:        roth,
		Description:        "Baseline",
	})

	if traditional.GreaterThan(stdDed.Amount) {
		ladder.Groups = append(ladder.Groups, domain.ConversionGroup{
			Num:                1,
			TraditionalSavings: traditional.Sub(stdDed.Amount),
			RothSavings:        roth.Add(stdDed.Amount),
			Description:        "Standard deduction",
		})
		ladder.HasStandardDeductionGroup = true
	} else {
		b.logger.Debugf("traditional balance %s does not cover the standard deduction %s, skipping group 1",
			traditional.StringFixed(2), stdDed.Amount.StringFixed(2))
	}

	// Each rung converts the standard deduction plus one bracket
	// ceiling. The open top bracket never forms a rung.
	for i := range brackets {
		br := brackets[i]
		if br.IncomeMax == nil {
			ladder.BreakingBracket = &br
			break
		}
		converted := stdDed.Amount.Add(*br.IncomeMax)
		if !traditional.GreaterThan(converted) {
			ladder.BreakingBracket = &br
			break
		}
		num := len(ladder.Groups)
		ladder.Groups = append(ladder.Groups, domain.ConversionGroup{
			Num:                num,
			TraditionalSavings: traditional.Sub(converted),
			RothSavings:        roth.Add(converted),
			Description:        fmt.Sprintf("Fill %s%% bracket", br.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1)),
		})
	}

	ladder.Groups = append(ladder.Groups, domain.ConversionGroup{
		Num:                len(ladder.Groups),
		TraditionalSavings: decimal.Zero,
		RothSavings:        roth.Add(traditional),
		Description:        "Full conversion",
	})

	b.logger.Debugf("built conversion ladder with %d groups", len(ladder.Groups))
	return ladder
}

// BracketForGroup returns the ladder bracket a middle rung fills.
// Group 0, the standard-deduction rung, and the full-conversion group
// have no bracket.
func (l *ConversionLadder) BracketForGroup(num int) *domain.TaxBracket {
	first := 1
	if l.HasStandardDeductionGroup {
		first = 2
	}
	idx := num - first
	if num < first || num >= len(l.Groups)-1 || idx >= len(l.Brackets) {
		return nil
	}
	return &l.Brackets[idx]
}

// ConversionAmount returns the balance a group moves out of the
// traditional account relative to the baseline.
func (l *ConversionLadder) ConversionAmount(num int, initialTraditional decimal.Decimal) decimal.Decimal {
	switch {
	case num == 0:
		return decimal.Zero
	case num == len(l.Groups)-1:
		return initialTraditional
	case num == 1 && l.HasStandardDeductionGroup:
		return l.StandardDeduction.Amount
	default:
		br := l.BracketForGroup(num)
		if br == nil || br.IncomeMax == nil {
			return decimal.Zero
		}
		return l.StandardDeduction.Amount.Add(*br.IncomeMax)
	}
}
