package core

import (
	"math"
	"sort"
)

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and standard deviation.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	// For single element, std = 0
	if len(data) == 1 {
		return mean, 0
	}

	// Standard deviation with N denominator (population std)
	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)))
	return mean, std
}

// -----------------------------------------------------------------------------

// SimpleReturns computes period-over-period simple returns.
// A zero or negative previous price contributes no return.
func SimpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// -----------------------------------------------------------------------------

// LogReturns computes period-over-period log returns.
// Pairs with a non-positive price are skipped.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(prices[i]/prices[i-1]))
	}
	return returns
}

// -----------------------------------------------------------------------------

// MovingAverage computes the arithmetic mean of the trailing window values.
// Returns false when the data is shorter than the window.
func MovingAverage(data []float64, window int) (float64, bool) {
	if window <= 0 || len(data) < window {
		return 0, false
	}

	sum := 0.0
	for _, v := range data[len(data)-window:] {
		sum += v
	}
	return sum / float64(window), true
}

// -----------------------------------------------------------------------------

// Percentile computes the p-quantile (p in [0, 1]) of data using linear
// interpolation between closest ranks.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	if len(data) == 1 {
		return data[0]
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}
