package util

import "math"

type StatsBundle struct {
	N      int
	Avg    float64
	StdDev float64
}

// CalcStatsBundle computes the mean and the corrected (N-1) sample standard deviation of values
// in two passes. The StdDev is NaN when fewer than two values are given, since the corrected
// estimator is undefined there; callers decide how to present that.
func CalcStatsBundle(values []float64) *StatsBundle {
	n := len(values)
	if n == 0 {
		return &StatsBundle{Avg: math.NaN(), StdDev: math.NaN()}
	}
	avg := Mean(values)
	if n < 2 {
		return &StatsBundle{N: n, Avg: avg, StdDev: math.NaN()}
	}
	squareSum := 0.0
	for _, v := range values {
		d := v - avg
		squareSum += d * d
	}
	return &StatsBundle{N: n, Avg: avg, StdDev: math.Sqrt(squareSum / float64(n-1))}
}

// Mean returns the arithmetic mean of values, or NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// RoundFloat64 rounds f to n decimal places. Negative zero is folded into zero so that rounded
// values print the same way regardless of the sign of a vanishing input.
func RoundFloat64(f float64, n int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow10(n)
	r := math.Round(f*pow) / pow
	if r == 0 {
		return 0
	}
	return r
}
