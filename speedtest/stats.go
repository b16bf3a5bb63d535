package speedtest

import "math"

// Summarize reduces a measurement batch to min/max/mean throughput. An empty
// batch yields ErrEmptyInput rather than NaN statistics.
func Summarize(measurements []Measurement) (*Stats, error) {
	if len(measurements) == 0 {
		return nil, ErrEmptyInput
	}

	mbps := make([]float64, len(measurements))
	for i, measurement := range measurements {
		mbps[i] = measurement.MbitPerSec
	}

	ret := &Stats{
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
		NSamples: len(mbps),
	}

	for _, sample := range mbps {
		if sample < ret.Min {
			ret.Min = sample
		}
		if sample > ret.Max {
			ret.Max = sample
		}
	}

	ret.Mean = meanOf(mbps)

	return ret, nil
}

// SummarizeBySize groups measurements by payload size before summarizing,
// preserving first-seen size order. Combined-across-sizes statistics let the
// slow small-payload runs drag down the headline number; grouping keeps each
// size's figure honest.
func SummarizeBySize(measurements []Measurement) ([]SizeStats, error) {
	if len(measurements) == 0 {
		return nil, ErrEmptyInput
	}

	order := []int64{}
	groups := map[int64][]Measurement{}

	for _, measurement := range measurements {
		if _, seen := groups[measurement.PayloadSize]; !seen {
			order = append(order, measurement.PayloadSize)
		}
		groups[measurement.PayloadSize] = append(groups[measurement.PayloadSize], measurement)
	}

	ret := make([]SizeStats, 0, len(order))
	for _, size := range order {
		stats, err := Summarize(groups[size])
		if err != nil {
			return nil, err
		}
		ret = append(ret, SizeStats{PayloadSize: size, Stats: *stats})
	}

	return ret, nil
}

func meanOf(series []float64) float64 {
	sum := float64(0)

	for _, element := range series {
		sum += element
	}

	return sum / float64(len(series))
}
