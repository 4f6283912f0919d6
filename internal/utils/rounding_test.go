package utils

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundingMethod(t *testing.T) {
	tests := []struct {
		name     string
		rounding RoundingType
		decimals int
		input    float64
		expected float64
	}{
		{"none keeps value", RoundingNone, 0, 44.4444, 44.4444},
		{"half up rounds half away", RoundingHalfUp, 0, 44.5, 45},
		{"half up rounds down below half", RoundingHalfUp, 0, 44.49, 44},
		{"default behaves like half up", RoundingDefault, 0, 2.5, 3},
		{"half up with decimals", RoundingHalfUp, 2, 66.66666, 66.67},
		{"half up ignores binary noise", RoundingHalfUp, 2, 1.005, 1.01},
		{"up rounds towards ceiling", RoundingUp, 0, 2.0001, 3},
		{"up keeps integers", RoundingUp, 0, 0.1 * 30, 3},
		{"up with decimals", RoundingUp, 1, 33.33, 33.4},
		{"down rounds towards floor", RoundingDown, 0, 2.9999, 2},
		{"down keeps values hidden by noise", RoundingDown, 2, 0.29, 0.29},
		{"down with decimals", RoundingDown, 1, 66.66, 66.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round, err := RoundingMethod(tt.rounding, tt.decimals)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, round(tt.input), 1e-9)
		})
	}
}

func TestRoundingMethod_Errors(t *testing.T) {
	_, err := RoundingMethod("BANKERS", 0)
	assert.ErrorIs(t, err, ErrUnknownRoundingType)

	_, err = RoundingMethod("", 0)
	assert.ErrorIs(t, err, ErrUnknownRoundingType)

	_, err = RoundingMethod(RoundingHalfUp, -1)
	assert.ErrorIs(t, err, ErrInvalidDecimals)

	_, err = RoundingMethod(RoundingHalfUp, MaxDecimals+1)
	assert.ErrorIs(t, err, ErrInvalidDecimals)
}

func TestRoundingMethod_Idempotent(t *testing.T) {
	inputs := []float64{0, 0.1, 0.5, 1.005, 2.675, 9.995, 33.333333, 44.5, 49.99, 50, 66.666666, 99.9999, 100}

	for _, rounding := range RoundingTypes() {
		for decimals := 0; decimals <= MaxDecimals; decimals++ {
			round, err := RoundingMethod(rounding, decimals)
			require.NoError(t, err)

			for _, x := range inputs {
				once := round(x)
				assert.Equal(t, once, round(once), "%s/%d not idempotent for %v", rounding, decimals, x)
			}
		}
	}
}

func TestRoundingMethod_Monotonic(t *testing.T) {
	for _, rounding := range RoundingTypes() {
		for decimals := 0; decimals <= MaxDecimals; decimals++ {
			round, err := RoundingMethod(rounding, decimals)
			require.NoError(t, err)

			previous := round(0)
			for x := 0.0; x <= 100; x += 0.037 {
				current := round(x)
				assert.GreaterOrEqual(t, current, previous, "%s/%d not monotonic at %v", rounding, decimals, x)
				previous = current
			}
		}
	}
}

func TestRoundingMethod_IdempotentAtEveryPrecision(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for _, rounding := range RoundingTypes() {
		for decimals := 0; decimals <= MaxDecimals; decimals++ {
			round, err := RoundingMethod(rounding, decimals)
			require.NoError(t, err)

			failures := 0
			for i := 0; i < 5000; i++ {
				x := r.Float64() * 1000
				once := round(x)
				if round(once) != once {
					failures++
				}
			}
			assert.Zero(t, failures, "%s/%d not idempotent", rounding, decimals)
		}
	}
}

func TestRoundingMethod_HighPrecision(t *testing.T) {
	tests := []struct {
		rounding RoundingType
		decimals int
		input    float64
		expected float64
	}{
		{RoundingUp, 8, 66.3558488115202, 66.35584882},
		{RoundingDown, 10, 77.76194977995067, 77.7619497799},
		{RoundingHalfUp, 10, 12.34567890125, 12.3456789013},
	}

	for _, tt := range tests {
		round, err := RoundingMethod(tt.rounding, tt.decimals)
		require.NoError(t, err)

		once := round(tt.input)
		assert.InDelta(t, tt.expected, once, 1e-12)
		assert.Equal(t, once, round(once))
	}
}

func TestRoundingMethod_PassesThroughNonFinite(t *testing.T) {
	round, err := RoundingMethod(RoundingHalfUp, 0)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(round(math.NaN())))
	assert.True(t, math.IsInf(round(math.Inf(1)), 1))
}

func TestCountFromPercent(t *testing.T) {
	assert.Equal(t, 5.0, CountFromPercent(10, 0.5))
	assert.InDelta(t, 2.25, CountFromPercent(3, 0.75), 1e-9)
	assert.Equal(t, 0.0, CountFromPercent(0, 0.75))
}

func TestCountFromPercent_QuotaRounding(t *testing.T) {
	round, err := RoundingMethod(RoundingHalfUp, 0)
	require.NoError(t, err)

	assert.Equal(t, 5.0, round(CountFromPercent(10, 0.5)))
	assert.Equal(t, 3.0, round(CountFromPercent(4, 0.75)))
}

func TestPercentOf(t *testing.T) {
	percent, err := PercentOf(9, 20)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, percent, 1e-9)

	percent, err = PercentOf(3, 3)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, percent, 1e-9)

	percent, err = PercentOf(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, percent)
}

func TestPercentOf_ZeroRequired(t *testing.T) {
	percent, err := PercentOf(5, 0)
	assert.ErrorIs(t, err, ErrDivisionBoundary)
	assert.Equal(t, 0.0, percent)

	_, err = PercentOf(0, 0)
	assert.ErrorIs(t, err, ErrDivisionBoundary)
}
