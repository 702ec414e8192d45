package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// tolerance absorbs client-side float rounding on percentages and paid sums.
var tolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// ValidationError reports a split whose inputs do not add up.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Allocate computes each participant's share of the total under the given
// method, then derives amount owed from what each participant already paid.
// The input slice is not mutated. Every monetary output is rounded to two
// places independently; rounding residue is not redistributed.
func Allocate(total decimal.Decimal, participants []Participant, method Method) ([]Participant, error) {
	if len(participants) < 2 {
		return nil, validationErrorf("a split needs at least 2 participants, got %d", len(participants))
	}
	for _, p := range participants {
		if p.AmountPaid.IsNegative() {
			return nil, validationErrorf("amount paid cannot be negative, got %s", p.AmountPaid)
		}
	}

	out := make([]Participant, len(participants))
	copy(out, participants)

	n := decimal.NewFromInt(int64(len(out)))

	switch method {
	case MethodEqual:
		share := total.Div(n).Round(2)
		pct := hundred.Div(n).Round(2)
		for i := range out {
			out[i].ShareAmount = share
			out[i].SharePercentage = pct
			out[i].ShareRatio = 1
		}

	case MethodPercentage:
		totalPct := decimal.Zero
		for _, p := range out {
			if p.SharePercentage.IsNegative() || p.SharePercentage.GreaterThan(hundred) {
				return nil, validationErrorf("share percentage must be between 0 and 100, got %s", p.SharePercentage)
			}
			totalPct = totalPct.Add(p.SharePercentage)
		}
		if totalPct.Sub(hundred).Abs().GreaterThan(tolerance) {
			return nil, validationErrorf("percentages must add up to 100, got %s", totalPct)
		}
		for i := range out {
			out[i].ShareAmount = out[i].SharePercentage.Div(hundred).Mul(total).Round(2)
		}

	case MethodRatio:
		totalRatio := int64(0)
		for i := range out {
			if out[i].ShareRatio <= 0 {
				out[i].ShareRatio = 1
			}
			totalRatio += int64(out[i].ShareRatio)
		}
		totalRatioDec := decimal.NewFromInt(totalRatio)
		for i := range out {
			ratio := decimal.NewFromInt(int64(out[i].ShareRatio))
			out[i].SharePercentage = ratio.Div(totalRatioDec).Mul(hundred).Round(2)
			out[i].ShareAmount = ratio.Div(totalRatioDec).Mul(total).Round(2)
		}

	default:
		return nil, fmt.Errorf("invalid split method %q", method)
	}

	totalPaid := decimal.Zero
	for _, p := range out {
		totalPaid = totalPaid.Add(p.AmountPaid)
	}
	if totalPaid.Sub(total).Abs().GreaterThan(tolerance) {
		return nil, validationErrorf("total paid (%s) must equal transaction amount (%s)", totalPaid, total)
	}

	for i := range out {
		out[i].AmountOwed = out[i].ShareAmount.Sub(out[i].AmountPaid).Round(2)
	}

	return out, nil
}
