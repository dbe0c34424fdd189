package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/amadeus"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	offers []offer.FlightOffer
	err    error
}

func (s *stubSearcher) Search(_ context.Context, _ amadeus.SearchParams) ([]offer.FlightOffer, error) {
	return s.offers, s.err
}

func sessionOffer(id string, price float64, airline string) offer.FlightOffer {
	return offer.FlightOffer{
		ID:       id,
		Price:    offer.PriceInfo{Total: price, Currency: "USD"},
		Airlines: []string{airline},
		Itineraries: []offer.Itinerary{{
			Duration: "PT2H",
			Segments: []offer.Segment{{
				CarrierCode: airline,
				Departure:   offer.Endpoint{At: "2024-03-15T08:00:00"},
			}},
		}},
	}
}

func TestRunSearch(t *testing.T) {
	searcher := &stubSearcher{offers: []offer.FlightOffer{
		sessionOffer("1", 300, "AA"),
		sessionOffer("2", 100, "BA"),
	}}
	controller := NewController(searcher)

	err := controller.RunSearch(context.Background(), amadeus.SearchParams{Origin: "JFK", Destination: "MIA"})
	require.NoError(t, err)

	view := controller.Snapshot()
	assert.Len(t, view.Offers, 2)
	assert.NoError(t, view.Err)
	assert.False(t, view.Active)

	// default sort is price ascending
	assert.Equal(t, "2", view.Filtered[0].ID)
	assert.Equal(t, [2]float64{100, 300}, view.Facets.PriceRange)
	assert.Len(t, view.Histogram, offer.BucketCount)
}

func TestRunSearch_ErrorClearsCollection(t *testing.T) {
	searcher := &stubSearcher{offers: []offer.FlightOffer{sessionOffer("1", 300, "AA")}}
	controller := NewController(searcher)

	require.NoError(t, controller.RunSearch(context.Background(), amadeus.SearchParams{}))

	searcher.offers = nil
	searcher.err = errors.New("upstream down")

	err := controller.RunSearch(context.Background(), amadeus.SearchParams{})
	require.Error(t, err)

	view := controller.Snapshot()
	assert.Empty(t, view.Offers)
	assert.Error(t, view.Err)
	assert.Equal(t, [2]float64{offer.DefaultPriceMin, offer.DefaultPriceMax}, view.Facets.PriceRange)
}

func TestRunSearch_ResetsFilters(t *testing.T) {
	searcher := &stubSearcher{offers: []offer.FlightOffer{
		sessionOffer("1", 300, "AA"),
		sessionOffer("2", 100, "BA"),
	}}
	controller := NewController(searcher)

	require.NoError(t, controller.RunSearch(context.Background(), amadeus.SearchParams{}))

	controller.ToggleAirline("AA")
	assert.True(t, controller.Snapshot().Active)
	assert.Len(t, controller.Snapshot().Filtered, 1)

	require.NoError(t, controller.RunSearch(context.Background(), amadeus.SearchParams{}))

	view := controller.Snapshot()
	assert.False(t, view.Active)
	assert.Len(t, view.Filtered, 2)
}

// sequencedSearcher blocks its first call until released; later calls
// complete immediately with a fresh result.
type sequencedSearcher struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *sequencedSearcher) Search(_ context.Context, _ amadeus.SearchParams) ([]offer.FlightOffer, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
		<-s.release

		return []offer.FlightOffer{sessionOffer("stale", 999, "ZZ")}, nil
	}

	return []offer.FlightOffer{sessionOffer("fresh", 100, "AA")}, nil
}

// A slow first search must not overwrite the result of a newer one.
func TestRunSearch_StaleCompletionDiscarded(t *testing.T) {
	searcher := &sequencedSearcher{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	controller := NewController(searcher)

	done := make(chan error, 1)
	go func() {
		done <- controller.RunSearch(context.Background(), amadeus.SearchParams{Origin: "JFK"})
	}()

	// wait for the first search to be in flight, then supersede it
	<-searcher.entered
	require.NoError(t, controller.RunSearch(context.Background(), amadeus.SearchParams{Origin: "LAX"}))

	close(searcher.release)
	require.NoError(t, <-done)

	view := controller.Snapshot()
	require.Len(t, view.Offers, 1)
	assert.Equal(t, "fresh", view.Offers[0].ID)
}

func TestFilterMutators(t *testing.T) {
	searcher := &stubSearcher{offers: []offer.FlightOffer{
		sessionOffer("1", 300, "AA"),
		sessionOffer("2", 100, "BA"),
	}}
	controller := NewController(searcher)
	require.NoError(t, controller.RunSearch(context.Background(), amadeus.SearchParams{}))

	controller.SetPriceRange(200, 400)
	assert.Equal(t, []string{"1"}, viewIDs(controller.Snapshot()))

	controller.ClearFilters()
	controller.ToggleStop(offer.BucketNonStop)
	assert.Len(t, controller.Snapshot().Filtered, 2)

	duration := 60
	controller.SetDurationMax(&duration)
	assert.Empty(t, controller.Snapshot().Filtered)

	controller.ClearFilters()
	controller.SetSortCriterion(offer.SortPriceDesc)
	assert.Equal(t, []string{"1", "2"}, viewIDs(controller.Snapshot()))
}

func viewIDs(view View) []string {
	ids := make([]string, len(view.Filtered))
	for i, o := range view.Filtered {
		ids[i] = o.ID
	}

	return ids
}
