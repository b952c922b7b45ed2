package recurrence

import "math"

// MeanStddev returns the mean and population standard deviation of the
// given values. The restock tracker uses the same statistic over a single
// item's purchase gaps that the detector uses over a merchant group's.
func MeanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stddev = math.Sqrt(sq / float64(len(values)))
	return mean, stddev
}
