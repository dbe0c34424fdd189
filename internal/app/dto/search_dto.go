package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
)

const dateLayout = "2006-01-02"

// SearchRequest is the body of the flight search endpoint.
type SearchRequest struct {
	Origin        string         `json:"origin" validate:"required,len=3,alpha"`
	Destination   string         `json:"destination" validate:"required,len=3,alpha"`
	DepartureDate string         `json:"departure_date" validate:"required"`
	ReturnDate    string         `json:"return_date,omitempty"`
	Adults        int            `json:"adults" validate:"required,min=1,max=9"`
	Children      int            `json:"children" validate:"min=0,max=9"`
	Infants       int            `json:"infants" validate:"min=0,max=9"`
	TravelClass   string         `json:"travel_class,omitempty" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop       bool           `json:"non_stop,omitempty"`
	MaxResults    int            `json:"max_results,omitempty" validate:"omitempty,min=1,max=250"`
	Filters       *FilterOptions `json:"filters,omitempty"`
	Sort          string         `json:"sort,omitempty"`
}

// FilterOptions mirrors the client-side filter panel. Absent fields
// leave their dimension unconstrained.
type FilterOptions struct {
	PriceMin      *float64 `json:"price_min,omitempty" validate:"omitempty,gte=0"`
	PriceMax      *float64 `json:"price_max,omitempty" validate:"omitempty,gt=0"`
	Stops         []int    `json:"stops,omitempty" validate:"omitempty,dive,min=0,max=2"`
	Airlines      []string `json:"airlines,omitempty"`
	DepartureTime []string `json:"departure_time,omitempty" validate:"omitempty,dive,oneof=morning afternoon evening night"`
	DurationMax   *int     `json:"duration_max,omitempty" validate:"omitempty,gt=0"`
}

func (s *SearchRequest) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if _, err := time.Parse(dateLayout, s.DepartureDate); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "departure_date must be formatted as YYYY-MM-DD",
		}
	}

	if s.ReturnDate != "" {
		if _, err := time.Parse(dateLayout, s.ReturnDate); err != nil {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "return_date must be formatted as YYYY-MM-DD",
			}
		}
	}

	if s.Sort != "" && !offer.ValidSortCriterion(s.Sort) {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("invalid sort criterion %s", s.Sort),
		}
	}

	if s.Filters != nil {
		if s.Filters.PriceMin != nil && s.Filters.PriceMax != nil &&
			*s.Filters.PriceMax <= *s.Filters.PriceMin {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "price_max must be greater than price_min",
			}
		}
	}

	return nil
}

// ToFilterSpec builds the engine's filter spec from the request,
// filling unset price bounds from the live facet range.
func (f *FilterOptions) ToFilterSpec(facets offer.Facets) offer.FilterSpec {
	spec := offer.DefaultSpec()
	spec.PriceRange = facets.PriceRange

	if f == nil {
		return spec
	}

	if f.PriceMin != nil {
		spec.PriceRange[0] = *f.PriceMin
	}
	if f.PriceMax != nil {
		spec.PriceRange[1] = *f.PriceMax
	}

	for _, bucket := range f.Stops {
		spec.Stops[offer.StopBucket(bucket)] = true
	}

	for _, code := range f.Airlines {
		spec.Airlines[code] = true
	}

	for _, slot := range f.DepartureTime {
		spec.DepartureTime[offer.TimeSlot(slot)] = true
	}

	if f.DurationMax != nil {
		m := *f.DurationMax
		spec.DurationMax = &m
	}

	return spec
}

// SortCriterion returns the requested order, defaulting to price
// ascending like the original result list.
func (s *SearchRequest) SortCriterion() offer.SortCriterion {
	if s.Sort == "" {
		return offer.SortPriceAsc
	}

	return offer.SortCriterion(s.Sort)
}

// LocationsRequest is the decoded query of the autocomplete endpoint.
type LocationsRequest struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

func (l *LocationsRequest) Validate() error {
	if err := ValidateSingleError(l); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type Metadata struct {
	TotalResults    int  `json:"total_results"`
	FilteredResults int  `json:"filtered_results"`
	SkippedOffers   int  `json:"skipped_offers"`
	SearchTimeMs    int  `json:"search_time_ms"`
	CacheHit        bool `json:"cache_hit"`
}

// SearchResponse is the response of the flight search endpoint.
type SearchResponse struct {
	SearchCriteria SearchRequest        `json:"search_criteria"`
	Metadata       Metadata             `json:"metadata"`
	Facets         offer.Facets         `json:"facets"`
	Offers         []offer.FlightOffer  `json:"offers"`
	Histogram      []offer.HistogramBin `json:"histogram"`
	Stats          offer.PriceStats     `json:"stats"`
	ActiveFilters  bool                 `json:"active_filters"`
}

// LocationsResponse is the response of the autocomplete endpoint.
type LocationsResponse struct {
	Locations []Location `json:"locations"`
}

type Location struct {
	IataCode    string `json:"iata_code"`
	Name        string `json:"name"`
	CityName    string `json:"city_name"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
}
