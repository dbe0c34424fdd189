package offer

import "math"

// Sentinel full price range used before any search has produced
// facets. The effective "no constraint" check always compares against
// live facets, never this default.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 10000
)

// FilterSpec holds one session's filter state. All mutators return a
// modified copy; the zero-value semantics are open: an empty set or
// unset bound imposes no restriction on its dimension.
type FilterSpec struct {
	PriceRange    [2]float64          `json:"price_range"`
	Stops         map[StopBucket]bool `json:"stops"`
	Airlines      map[string]bool     `json:"airlines"`
	DepartureTime map[TimeSlot]bool   `json:"departure_time"`
	DurationMax   *int                `json:"duration_max,omitempty"`
}

// DefaultSpec returns the FilterSpec a fresh session starts with.
func DefaultSpec() FilterSpec {
	return FilterSpec{
		PriceRange:    [2]float64{DefaultPriceMin, DefaultPriceMax},
		Stops:         map[StopBucket]bool{},
		Airlines:      map[string]bool{},
		DepartureTime: map[TimeSlot]bool{},
	}
}

// ComputeFacets derives the selectable filter dimensions from the
// current offer collection. An empty collection yields the sentinel
// full price range rather than an error.
func ComputeFacets(offers []FlightOffer) Facets {
	facets := Facets{
		PriceRange:  [2]float64{DefaultPriceMin, DefaultPriceMax},
		StopsCounts: map[StopBucket]int{BucketNonStop: 0, BucketOneStop: 0, BucketTwoPlus: 0},
	}

	if len(offers) > 0 {
		minPrice := math.MaxFloat64
		maxPrice := -math.MaxFloat64
		for _, o := range offers {
			if o.Price.Total < minPrice {
				minPrice = o.Price.Total
			}
			if o.Price.Total > maxPrice {
				maxPrice = o.Price.Total
			}
		}

		facets.PriceRange = [2]float64{math.Floor(minPrice), math.Ceil(maxPrice)}
	}

	seen := make(map[string]bool)
	for _, o := range offers {
		facets.StopsCounts[o.OutboundStopBucket()]++

		for i, code := range o.Airlines {
			if seen[code] {
				continue
			}

			seen[code] = true
			name := code
			if i < len(o.AirlineNames) && o.AirlineNames[i] != "" {
				name = o.AirlineNames[i]
			}

			facets.AvailableAirlines = append(facets.AvailableAirlines, Airline{Code: code, Name: name})
		}
	}

	return facets
}

// Apply returns the offers satisfying every active dimension of the
// spec. Dimensions combine by AND, selections within one dimension by
// OR. The result preserves input order and never duplicates.
func Apply(offers []FlightOffer, spec FilterSpec, facets Facets) []FlightOffer {
	results := make([]FlightOffer, 0, len(offers))

	priceConstrained := spec.PriceRange[0] > facets.PriceRange[0] ||
		spec.PriceRange[1] < facets.PriceRange[1]

	for _, o := range offers {
		if priceConstrained &&
			(o.Price.Total < spec.PriceRange[0] || o.Price.Total > spec.PriceRange[1]) {
			continue
		}

		if len(spec.Stops) > 0 && !spec.Stops[o.OutboundStopBucket()] {
			continue
		}

		if len(spec.Airlines) > 0 && !intersectsAirlines(o.Airlines, spec.Airlines) {
			continue
		}

		if len(spec.DepartureTime) > 0 {
			hour, ok := DepartureHour(o.OutboundDeparture())
			if !ok || !spec.DepartureTime[TimeSlotOf(hour)] {
				continue
			}
		}

		if spec.DurationMax != nil &&
			ParseDurationMinutes(o.Outbound().Duration) > *spec.DurationMax {
			continue
		}

		results = append(results, o)
	}

	return results
}

func intersectsAirlines(codes []string, selected map[string]bool) bool {
	for _, code := range codes {
		if selected[code] {
			return true
		}
	}

	return false
}

// SetPriceRange replaces the price bounds.
func (s FilterSpec) SetPriceRange(min, max float64) FilterSpec {
	next := s.clone()
	next.PriceRange = [2]float64{min, max}

	return next
}

// ToggleStop flips membership of a stop bucket in the selection.
func (s FilterSpec) ToggleStop(bucket StopBucket) FilterSpec {
	next := s.clone()
	if next.Stops[bucket] {
		delete(next.Stops, bucket)
	} else {
		next.Stops[bucket] = true
	}

	return next
}

// ToggleAirline flips membership of a carrier code in the selection.
func (s FilterSpec) ToggleAirline(code string) FilterSpec {
	next := s.clone()
	if next.Airlines[code] {
		delete(next.Airlines, code)
	} else {
		next.Airlines[code] = true
	}

	return next
}

// ToggleDepartureTime flips membership of a time slot in the selection.
func (s FilterSpec) ToggleDepartureTime(slot TimeSlot) FilterSpec {
	next := s.clone()
	if next.DepartureTime[slot] {
		delete(next.DepartureTime, slot)
	} else {
		next.DepartureTime[slot] = true
	}

	return next
}

// SetDurationMax sets or clears the maximum outbound duration in
// minutes. nil means unconstrained.
func (s FilterSpec) SetDurationMax(minutes *int) FilterSpec {
	next := s.clone()
	if minutes == nil {
		next.DurationMax = nil
	} else {
		m := *minutes
		next.DurationMax = &m
	}

	return next
}

// Clear resets the filter spec to its defaults. The sentinel price range is
// stored, not the live facet range; facets change per search so
// HasActiveFilters compares against them at read time.
func (s FilterSpec) Clear() FilterSpec {
	return DefaultSpec()
}

// HasActiveFilters reports whether any dimension restricts the result:
// a non-empty selection, a duration cap, or a price range strictly
// inside the live facet range.
func HasActiveFilters(spec FilterSpec, facets Facets) bool {
	return len(spec.Stops) > 0 ||
		len(spec.Airlines) > 0 ||
		len(spec.DepartureTime) > 0 ||
		spec.DurationMax != nil ||
		spec.PriceRange[0] > facets.PriceRange[0] ||
		spec.PriceRange[1] < facets.PriceRange[1]
}

func (s FilterSpec) clone() FilterSpec {
	next := FilterSpec{
		PriceRange:    s.PriceRange,
		Stops:         make(map[StopBucket]bool, len(s.Stops)),
		Airlines:      make(map[string]bool, len(s.Airlines)),
		DepartureTime: make(map[TimeSlot]bool, len(s.DepartureTime)),
	}

	for k, v := range s.Stops {
		next.Stops[k] = v
	}
	for k, v := range s.Airlines {
		next.Airlines[k] = v
	}
	for k, v := range s.DepartureTime {
		next.DepartureTime[k] = v
	}

	if s.DurationMax != nil {
		m := *s.DurationMax
		next.DurationMax = &m
	}

	return next
}
