package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDistribution(t *testing.T) {
	tests := []struct {
		n    int
		want Distribution
	}{
		{1, Distribution{MultipleChoice: 1}},
		{2, Distribution{MultipleChoice: 1, TrueFalse: 1}},
		{3, Distribution{MultipleChoice: 2, TrueFalse: 1}},
		{4, Distribution{MultipleChoice: 2, TrueFalse: 1, FreeText: 1}},
		{5, Distribution{MultipleChoice: 2, TrueFalse: 2, FreeText: 1}},
		{7, Distribution{MultipleChoice: 3, TrueFalse: 2, FreeText: 2}},
		{9, Distribution{MultipleChoice: 4, TrueFalse: 3, FreeText: 2}},
		{10, Distribution{MultipleChoice: 4, TrueFalse: 3, FreeText: 3}},
		{20, Distribution{MultipleChoice: 8, TrueFalse: 6, FreeText: 6}},
		{50, Distribution{MultipleChoice: 20, TrueFalse: 15, FreeText: 15}},
	}
	for _, tt := range tests {
		got, err := ComposeDistribution(tt.n)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestComposeDistribution_Properties(t *testing.T) {
	for n := MinQuestions; n <= MaxQuestions; n++ {
		d, err := ComposeDistribution(n)
		require.NoError(t, err)

		assert.Equal(t, n, d.Total(), "n=%d sums exactly", n)
		assert.GreaterOrEqual(t, d.MultipleChoice, ceilPercent(n, 40), "n=%d keeps the multiple choice ceiling", n)
		assert.GreaterOrEqual(t, d.TrueFalse, 0)
		assert.GreaterOrEqual(t, d.FreeText, 0)
		assert.GreaterOrEqual(t, d.TrueFalse, d.FreeText, "n=%d free text absorbs first", n)

		// When the three ceilings fit, every type gets its full share.
		if ceilPercent(n, 40)+2*ceilPercent(n, 30) <= n {
			assert.Equal(t, ceilPercent(n, 30), d.TrueFalse)
			assert.Equal(t, ceilPercent(n, 30), d.FreeText)
		}

		again, _ := ComposeDistribution(n)
		assert.Equal(t, d, again)
	}
}

func TestComposeDistribution_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -3, 51, 1000} {
		_, err := ComposeDistribution(n)
		var ce *CompositionError
		require.ErrorAs(t, err, &ce, "n=%d", n)
		assert.Equal(t, ConstraintCount, ce.Constraint)
	}
}

func TestCeilPercent(t *testing.T) {
	assert.Equal(t, 3, ceilPercent(7, 40))
	assert.Equal(t, 3, ceilPercent(7, 30))
	assert.Equal(t, 4, ceilPercent(10, 40))
	assert.Equal(t, 3, ceilPercent(10, 30))
	assert.Equal(t, 1, ceilPercent(1, 30))
}
