package exam

import "fmt"

// ComposeDistribution splits n questions across the three types. Each type
// starts at its minimum share, rounded up: 40% multiple choice, 30% true/
// false and 30% free text. Any excess over n is taken back one question at
// a time from free text and true/false in turn, never below zero, and from
// multiple choice only when both are exhausted.
func ComposeDistribution(n int) (Distribution, error) {
	if n < MinQuestions || n > MaxQuestions {
		return Distribution{}, &CompositionError{
			Constraint: ConstraintCount,
			Message:    fmt.Sprintf("numQuestions must be between %d and %d, got %d", MinQuestions, MaxQuestions, n),
		}
	}

	d := Distribution{
		MultipleChoice: ceilPercent(n, 40),
		TrueFalse:      ceilPercent(n, 30),
		FreeText:       ceilPercent(n, 30),
	}

	takeFreeText := true
	for excess := d.Total() - n; excess > 0; excess-- {
		switch {
		case takeFreeText && d.FreeText > 0:
			d.FreeText--
		case !takeFreeText && d.TrueFalse > 0:
			d.TrueFalse--
		case d.FreeText > 0:
			d.FreeText--
		case d.TrueFalse > 0:
			d.TrueFalse--
		default:
			d.MultipleChoice--
		}
		takeFreeText = !takeFreeText
	}
	return d, nil
}

// ceilPercent returns ceil(n*pct/100) using integer arithmetic.
func ceilPercent(n, pct int) int {
	return (n*pct + 99) / 100
}
