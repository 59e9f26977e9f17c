package similarity

import "math"

// Mean returns the arithmetic mean, or NaN for an empty slice.
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

// SampleStdDev returns the Bessel-corrected standard deviation. It is NaN for
// fewer than two values.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return math.Sqrt(sumSquares(values) / float64(len(values)-1))
}

// PopulationStdDev returns the population standard deviation. A single value
// has zero deviation; an empty slice is NaN.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return math.Sqrt(sumSquares(values) / float64(len(values)))
}

func sumSquares(values []float64) float64 {
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum
}

// ZScore returns how many standard deviations x lies from mean. With zero
// deviation the result is ±Inf, or NaN when x equals the mean.
func ZScore(x, mean, stdDev float64) float64 {
	return (x - mean) / stdDev
}
