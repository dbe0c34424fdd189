package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pricedOffers(prices ...float64) []FlightOffer {
	offers := make([]FlightOffer, len(prices))
	for i, p := range prices {
		offers[i] = testOffer(string(rune('a'+i)), p, 0, "AA", "2024-03-15T08:00:00", "PT2H")
	}

	return offers
}

func sumBins(bins []HistogramBin) (all, filtered int) {
	for _, bin := range bins {
		all += bin.All
		filtered += bin.Filtered
	}

	return all, filtered
}

func TestBuildHistogram(t *testing.T) {
	all := pricedOffers(100, 220, 340, 460, 580, 700)
	subset := all[:3]

	bins, stats := BuildHistogram(all, subset)

	assert.Len(t, bins, BucketCount)

	allCount, filteredCount := sumBins(bins)
	assert.Equal(t, len(all), allCount)
	assert.Equal(t, len(subset), filteredCount)

	assert.Equal(t, 100.0, stats.Min)
	assert.Equal(t, 700.0, stats.Max)
	assert.InDelta(t, 400.0, stats.Avg, 0.001)
	assert.Equal(t, 100.0, stats.FilteredMin)
	assert.InDelta(t, 220.0, stats.FilteredAvg, 0.001)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.Filtered)
}

// The maximum-priced offer lands in the last bucket instead of
// falling off the end of the half-open range.
func TestBuildHistogram_MaxPriceInLastBucket(t *testing.T) {
	all := pricedOffers(100, 700)

	bins, _ := BuildHistogram(all, all)

	assert.Equal(t, 1, bins[0].All)
	assert.Equal(t, 1, bins[BucketCount-1].All)

	allCount, _ := sumBins(bins)
	assert.Equal(t, 2, allCount)
}

// A single-price collection must not divide by zero; everything lands
// in bucket 0.
func TestBuildHistogram_DegenerateSinglePrice(t *testing.T) {
	all := pricedOffers(250, 250, 250)

	bins, stats := BuildHistogram(all, all)

	assert.Equal(t, 3, bins[0].All)
	assert.Equal(t, 3, bins[0].Filtered)
	assert.Equal(t, 250.0, stats.Min)
	assert.Equal(t, 250.0, stats.Max)

	for _, bin := range bins[1:] {
		assert.Equal(t, 0, bin.All)
	}
}

func TestBuildHistogram_EmptyFilteredSet(t *testing.T) {
	all := pricedOffers(100, 200, 300)

	bins, stats := BuildHistogram(all, nil)

	_, filteredCount := sumBins(bins)
	assert.Equal(t, 0, filteredCount)
	assert.Equal(t, 0.0, stats.FilteredMin)
	assert.Equal(t, 0.0, stats.FilteredAvg)
	assert.Equal(t, 0, stats.Filtered)
}

func TestBuildHistogram_EmptyCollection(t *testing.T) {
	bins, stats := BuildHistogram(nil, nil)

	assert.Empty(t, bins)
	assert.Equal(t, PriceStats{}, stats)
}

func TestBuildHistogram_BucketLabels(t *testing.T) {
	all := pricedOffers(0, 1200)

	bins, _ := BuildHistogram(all, nil)

	assert.Equal(t, 0, bins[0].PriceLabel)
	assert.Equal(t, 100, bins[1].PriceLabel)
	assert.Equal(t, 1100, bins[BucketCount-1].PriceLabel)
}
