package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Clamp bounds x to [lo, hi]. NaN clamps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// IsAbsent reports whether v encodes a missing value.
func IsAbsent(v float64) bool {
	return math.IsNaN(v)
}

// ParseValue converts form or provider text to a raw metric value.
// Blank or unparseable input is absent (NaN). A trailing percent sign and
// thousands separators are tolerated.
func ParseValue(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FractionToPercent converts a ratio such as 0.25 to 25. Absent stays absent.
func FractionToPercent(v float64) float64 {
	if IsAbsent(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v * 100
}

// linearTent peaks at 100 when x == center and decays by 100 points per
// tolerance of distance.
func linearTent(x, center, tolerance float64) float64 {
	dist := math.Abs(x - center)
	if tolerance <= 0 {
		if dist == 0 {
			return 100
		}
		return 0
	}
	return Clamp(100-(dist/tolerance)*100, 0, 100)
}

// descendingRamp is 100 at or below lo, 0 at or above hi, linear between.
func descendingRamp(x, lo, hi float64) float64 {
	if x <= lo {
		return 100
	}
	if x >= hi {
		return 0
	}
	return Clamp(100-((x-lo)/(hi-lo))*100, 0, 100)
}
