package offer

import "sort"

// SortCriterion selects one of the six total orders.
type SortCriterion string

const (
	SortPriceAsc      SortCriterion = "price-asc"
	SortPriceDesc     SortCriterion = "price-desc"
	SortDurationAsc   SortCriterion = "duration-asc"
	SortDurationDesc  SortCriterion = "duration-desc"
	SortDepartureAsc  SortCriterion = "departure-asc"
	SortDepartureDesc SortCriterion = "departure-desc"
)

// ValidSortCriterion reports whether s names a supported order.
func ValidSortCriterion(s string) bool {
	switch SortCriterion(s) {
	case SortPriceAsc, SortPriceDesc, SortDurationAsc, SortDurationDesc,
		SortDepartureAsc, SortDepartureDesc:
		return true
	}

	return false
}

// Sort returns a new ordering of offers by the given criterion. The
// input is never mutated and ties keep their original relative order,
// so equal-key offers do not jump around as the user re-sorts.
// Missing keys fall back defensively: 0 minutes for durations, epoch 0
// for unparseable departure timestamps.
func Sort(offers []FlightOffer, criterion SortCriterion) []FlightOffer {
	sorted := make([]FlightOffer, len(offers))
	copy(sorted, offers)

	switch criterion {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.Total < sorted[j].Price.Total
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.Total > sorted[j].Price.Total
		})
	case SortDurationAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return outboundMinutes(sorted[i]) < outboundMinutes(sorted[j])
		})
	case SortDurationDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return outboundMinutes(sorted[i]) > outboundMinutes(sorted[j])
		})
	case SortDepartureAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureKey(sorted[i]) < departureKey(sorted[j])
		})
	case SortDepartureDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureKey(sorted[i]) > departureKey(sorted[j])
		})
	}

	return sorted
}

func outboundMinutes(o FlightOffer) int {
	return ParseDurationMinutes(o.Outbound().Duration)
}

func departureKey(o FlightOffer) int64 {
	return DepartureUnix(o.OutboundDeparture())
}
