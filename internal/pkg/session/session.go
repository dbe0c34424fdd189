// Package session owns the lifecycle of one interactive search: it
// triggers the fetch, keeps the resulting offer collection and filter
// state, and recomputes derived views on demand. A generation counter
// guards against a stale fetch overwriting a newer search.
package session

import (
	"context"
	"sync"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/amadeus"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
)

// Searcher runs one offer search. Implemented by the service layer;
// narrowed here so tests can stub the network.
type Searcher interface {
	Search(ctx context.Context, params amadeus.SearchParams) ([]offer.FlightOffer, error)
}

// Controller holds one session's state. All methods are safe for
// concurrent use; derived views are computed fresh from snapshots and
// never mutated in place.
type Controller struct {
	searcher Searcher

	mu         sync.Mutex
	generation uint64
	offers     []offer.FlightOffer
	facets     offer.Facets
	spec       offer.FilterSpec
	criterion  offer.SortCriterion
	lastErr    error
	params     amadeus.SearchParams
}

func NewController(searcher Searcher) *Controller {
	return &Controller{
		searcher:  searcher,
		spec:      offer.DefaultSpec(),
		facets:    offer.ComputeFacets(nil),
		criterion: offer.SortPriceAsc,
	}
}

// RunSearch starts a new search. The filter spec resets to defaults
// and any prior collection is replaced. If another search began while
// this one was in flight, its completion is discarded.
func (c *Controller) RunSearch(ctx context.Context, params amadeus.SearchParams) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.params = params
	c.spec = offer.DefaultSpec()
	c.mu.Unlock()

	offers, err := c.searcher.Search(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// superseded by a newer search
		return nil
	}

	if err != nil {
		c.offers = nil
		c.facets = offer.ComputeFacets(nil)
		c.lastErr = err

		return err
	}

	c.offers = offers
	c.facets = offer.ComputeFacets(offers)
	c.lastErr = nil

	return nil
}

// View is one consistent snapshot of the session's derived state.
type View struct {
	Offers    []offer.FlightOffer
	Filtered  []offer.FlightOffer
	Facets    offer.Facets
	Spec      offer.FilterSpec
	Histogram []offer.HistogramBin
	Stats     offer.PriceStats
	Active    bool
	Err       error
}

// Snapshot recomputes the filtered, sorted and aggregated views from
// the current offers and spec.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	offers := c.offers
	facets := c.facets
	spec := c.spec
	criterion := c.criterion
	lastErr := c.lastErr
	c.mu.Unlock()

	filtered := offer.Apply(offers, spec, facets)
	sorted := offer.Sort(filtered, criterion)
	bins, stats := offer.BuildHistogram(offers, filtered)

	return View{
		Offers:    offers,
		Filtered:  sorted,
		Facets:    facets,
		Spec:      spec,
		Histogram: bins,
		Stats:     stats,
		Active:    offer.HasActiveFilters(spec, facets),
		Err:       lastErr,
	}
}

// Params returns the criteria of the most recent search.
func (c *Controller) Params() amadeus.SearchParams {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.params
}

// SetSortCriterion switches the display order for later snapshots.
func (c *Controller) SetSortCriterion(criterion offer.SortCriterion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criterion = criterion
}

// SetPriceRange narrows or widens the price filter.
func (c *Controller) SetPriceRange(min, max float64) {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.SetPriceRange(min, max) })
}

// ToggleStop flips a stop-bucket selection.
func (c *Controller) ToggleStop(bucket offer.StopBucket) {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.ToggleStop(bucket) })
}

// ToggleAirline flips a carrier selection.
func (c *Controller) ToggleAirline(code string) {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.ToggleAirline(code) })
}

// ToggleDepartureTime flips a time-slot selection.
func (c *Controller) ToggleDepartureTime(slot offer.TimeSlot) {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.ToggleDepartureTime(slot) })
}

// SetDurationMax caps or uncaps the outbound duration filter.
func (c *Controller) SetDurationMax(minutes *int) {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.SetDurationMax(minutes) })
}

// ClearFilters resets the filter spec to defaults without touching offers.
func (c *Controller) ClearFilters() {
	c.mutate(func(s offer.FilterSpec) offer.FilterSpec { return s.Clear() })
}

func (c *Controller) mutate(fn func(offer.FilterSpec) offer.FilterSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec = fn(c.spec)
}
