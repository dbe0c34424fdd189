package offer

import "math"

// BucketCount is the fixed number of price-distribution bins.
const BucketCount = 12

// HistogramBin is one equal-width price bucket with counts over the
// full collection and the currently filtered subset.
type HistogramBin struct {
	PriceLabel int `json:"price"`
	All        int `json:"all"`
	Filtered   int `json:"filtered"`
}

// PriceStats summarizes both collections for the graph header.
// FilteredMin and FilteredAvg are 0 when the filtered set is empty.
type PriceStats struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Avg         float64 `json:"avg"`
	FilteredMin float64 `json:"filtered_min"`
	FilteredAvg float64 `json:"filtered_avg"`
	Total       int     `json:"total"`
	Filtered    int     `json:"filtered"`
}

// BuildHistogram buckets the price span of all offers into BucketCount
// equal-width bins and counts, per bin, how many offers of each set
// fall in it. Bins are half-open [lower, lower+width) except the last,
// which includes its upper bound so the maximum-priced offer is
// counted. A single-price collection gets width 1 and everything lands
// in bin 0.
func BuildHistogram(all, filtered []FlightOffer) ([]HistogramBin, PriceStats) {
	if len(all) == 0 {
		return []HistogramBin{}, PriceStats{}
	}

	minPrice := math.MaxFloat64
	maxPrice := -math.MaxFloat64
	var sum float64
	for _, o := range all {
		if o.Price.Total < minPrice {
			minPrice = o.Price.Total
		}
		if o.Price.Total > maxPrice {
			maxPrice = o.Price.Total
		}
		sum += o.Price.Total
	}

	width := (maxPrice - minPrice) / BucketCount
	if width == 0 {
		width = 1
	}

	bins := make([]HistogramBin, BucketCount)
	for i := range bins {
		bins[i].PriceLabel = int(math.Round(minPrice + float64(i)*width))
	}

	for _, o := range all {
		bins[binIndex(o.Price.Total, minPrice, width)].All++
	}

	stats := PriceStats{
		Min:      minPrice,
		Max:      maxPrice,
		Avg:      sum / float64(len(all)),
		Total:    len(all),
		Filtered: len(filtered),
	}

	if len(filtered) > 0 {
		filteredMin := math.MaxFloat64
		var filteredSum float64
		for _, o := range filtered {
			bins[binIndex(o.Price.Total, minPrice, width)].Filtered++

			if o.Price.Total < filteredMin {
				filteredMin = o.Price.Total
			}
			filteredSum += o.Price.Total
		}

		stats.FilteredMin = filteredMin
		stats.FilteredAvg = filteredSum / float64(len(filtered))
	}

	return bins, stats
}

// binIndex clamps into [0, BucketCount-1] so the maximum price falls
// in the final bucket instead of one past it.
func binIndex(price, minPrice, width float64) int {
	idx := int((price - minPrice) / width)
	if idx < 0 {
		idx = 0
	}
	if idx >= BucketCount {
		idx = BucketCount - 1
	}

	return idx
}
