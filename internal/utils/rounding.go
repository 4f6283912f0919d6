package utils

import (
	"errors"
	"fmt"
	"math"
)

// RoundingType selects how a computed value is mapped to a reportable number
type RoundingType string

const (
	RoundingNone    RoundingType = "NONE"
	RoundingHalfUp  RoundingType = "ROUND_HALF_UP"
	RoundingDefault RoundingType = "DEFAULT" // same as ROUND_HALF_UP
	RoundingUp      RoundingType = "ROUND_UP"
	RoundingDown    RoundingType = "ROUND_DOWN"
)

// MaxDecimals is the highest precision a rounding option may request
const MaxDecimals = 10

// A scaled value this close to a rounding boundary is treated as lying on it.
// The absolute part absorbs decimal inputs without an exact binary form
// (1.005*100 = 100.49999999999999). The relative part covers the error of
// scaling a rounded result back up, which grows with the magnitude and would
// otherwise push it across the boundary again.
const (
	absoluteNoise = 1e-6
	relativeNoise = 2e-15
	maxNoise      = 0.25
)

var (
	ErrUnknownRoundingType = errors.New("unknown rounding type")
	ErrInvalidDecimals     = errors.New("invalid rounding precision")
	ErrDivisionBoundary    = errors.New("cannot compute percent of zero")
)

// RoundingTypes lists every supported rounding type
func RoundingTypes() []RoundingType {
	return []RoundingType{RoundingNone, RoundingHalfUp, RoundingDefault, RoundingUp, RoundingDown}
}

// IsValidRoundingType reports whether t names a supported rounding type
func IsValidRoundingType(t RoundingType) bool {
	for _, valid := range RoundingTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// RoundingMethod returns the rounding function for the given type and precision.
// The returned function is pure, idempotent and monotonic.
func RoundingMethod(t RoundingType, decimals int) (func(float64) float64, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidDecimals, decimals, MaxDecimals)
	}

	scale := math.Pow10(decimals)

	switch t {
	case RoundingNone:
		return func(v float64) float64 { return v }, nil
	case RoundingHalfUp, RoundingDefault:
		return scaled(scale, 0.5, func(n float64) float64 { return math.Floor(n + 0.5) }), nil
	case RoundingUp:
		return scaled(scale, 0, math.Ceil), nil
	case RoundingDown:
		return scaled(scale, 0, math.Floor), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoundingType, t)
	}
}

// scaled rounds v*scale to an integer. Boundaries of round lie at integers
// plus offset.
func scaled(scale, offset float64, round func(float64) float64) func(float64) float64 {
	return func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		return round(snap(v*scale, offset)) / scale
	}
}

// snap moves n onto the nearest boundary when it is within noise of it
func snap(n, offset float64) float64 {
	boundary := math.Round(n-offset) + offset
	noise := math.Min(maxNoise, math.Max(absoluteNoise, math.Abs(n)*relativeNoise))
	if math.Abs(n-boundary) <= noise {
		return boundary
	}
	return n
}

// CountFromPercent returns the unrounded share of total described by fraction.
// Rounding is left to the caller.
func CountFromPercent(total int, fraction float64) float64 {
	return float64(total) * fraction
}

// PercentOf returns achieved relative to required, in percent
func PercentOf(achieved, required float64) (float64, error) {
	if required == 0 {
		return 0, fmt.Errorf("%w: achieved %v of %v", ErrDivisionBoundary, achieved, required)
	}
	return achieved / required * 100, nil
}
