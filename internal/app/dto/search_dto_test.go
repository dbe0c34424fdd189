package dto

import (
	"testing"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := InitValidator(); err != nil {
		panic(err)
	}

	m.Run()
}

func validRequest() SearchRequest {
	return SearchRequest{
		Origin:        "JFK",
		Destination:   "MIA",
		DepartureDate: "2024-03-15",
		Adults:        1,
	}
}

func TestSearchRequest_Validate(t *testing.T) {
	validateRequest := func(mutate func(*SearchRequest), wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			req := validRequest()
			mutate(&req)

			err := req.Validate()
			if wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		}
	}

	t.Run("valid", validateRequest(func(r *SearchRequest) {}, false))
	t.Run("missing_origin", validateRequest(func(r *SearchRequest) { r.Origin = "" }, true))
	t.Run("origin_not_iata", validateRequest(func(r *SearchRequest) { r.Origin = "NEWYORK" }, true))
	t.Run("zero_adults", validateRequest(func(r *SearchRequest) { r.Adults = 0 }, true))
	t.Run("too_many_adults", validateRequest(func(r *SearchRequest) { r.Adults = 10 }, true))
	t.Run("bad_departure_date", validateRequest(func(r *SearchRequest) { r.DepartureDate = "15-03-2024" }, true))
	t.Run("bad_return_date", validateRequest(func(r *SearchRequest) { r.ReturnDate = "soon" }, true))
	t.Run("valid_return_date", validateRequest(func(r *SearchRequest) { r.ReturnDate = "2024-03-22" }, false))
	t.Run("bad_travel_class", validateRequest(func(r *SearchRequest) { r.TravelClass = "COACH" }, true))
	t.Run("valid_travel_class", validateRequest(func(r *SearchRequest) { r.TravelClass = "BUSINESS" }, false))
	t.Run("bad_sort", validateRequest(func(r *SearchRequest) { r.Sort = "stops-asc" }, true))
	t.Run("valid_sort", validateRequest(func(r *SearchRequest) { r.Sort = "duration-desc" }, false))
	t.Run("inverted_price_band", validateRequest(func(r *SearchRequest) {
		low, high := 500.0, 100.0
		r.Filters = &FilterOptions{PriceMin: &low, PriceMax: &high}
	}, true))
	t.Run("bad_stop_bucket", validateRequest(func(r *SearchRequest) {
		r.Filters = &FilterOptions{Stops: []int{3}}
	}, true))
	t.Run("bad_time_slot", validateRequest(func(r *SearchRequest) {
		r.Filters = &FilterOptions{DepartureTime: []string{"dawn"}}
	}, true))
	t.Run("valid_filters", validateRequest(func(r *SearchRequest) {
		max := 800.0
		r.Filters = &FilterOptions{PriceMax: &max, Stops: []int{0, 1}, DepartureTime: []string{"morning"}}
	}, false))
}

func TestFilterOptions_ToFilterSpec(t *testing.T) {
	facets := offer.Facets{PriceRange: [2]float64{120, 950}}

	t.Run("nil_options_use_facet_range", func(t *testing.T) {
		var opts *FilterOptions

		spec := opts.ToFilterSpec(facets)
		assert.Equal(t, facets.PriceRange, spec.PriceRange)
		assert.Empty(t, spec.Stops)
		assert.Nil(t, spec.DurationMax)
	})

	t.Run("bounds_override_facets", func(t *testing.T) {
		min, max := 200.0, 700.0
		duration := 360
		opts := &FilterOptions{
			PriceMin:      &min,
			PriceMax:      &max,
			Stops:         []int{0, 2},
			Airlines:      []string{"AA", "BA"},
			DepartureTime: []string{"morning", "night"},
			DurationMax:   &duration,
		}

		spec := opts.ToFilterSpec(facets)
		assert.Equal(t, [2]float64{200, 700}, spec.PriceRange)
		assert.True(t, spec.Stops[offer.BucketNonStop])
		assert.True(t, spec.Stops[offer.BucketTwoPlus])
		assert.False(t, spec.Stops[offer.BucketOneStop])
		assert.True(t, spec.Airlines["AA"])
		assert.True(t, spec.DepartureTime[offer.SlotNight])
		require.NotNil(t, spec.DurationMax)
		assert.Equal(t, 360, *spec.DurationMax)
	})
}

func TestSearchRequest_SortCriterion(t *testing.T) {
	req := validRequest()
	assert.Equal(t, offer.SortPriceAsc, req.SortCriterion())

	req.Sort = "departure-desc"
	assert.Equal(t, offer.SortDepartureDesc, req.SortCriterion())
}

func TestLocationsRequest_Validate(t *testing.T) {
	req := LocationsRequest{Keyword: "new", Limit: 10}
	assert.NoError(t, req.Validate())

	req.Limit = 500
	assert.Error(t, req.Validate())
}
