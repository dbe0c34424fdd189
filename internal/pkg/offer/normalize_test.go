package offer

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRoundTrip() RawOffer {
	return RawOffer{
		ID:    "offer-1",
		Price: RawPrice{Total: "842.50", Currency: "USD"},
		TravelerPricings: []TravelerPricing{{
			Price:       RawPrice{Total: "421.25"},
			FareDetails: []FareDetail{{Cabin: "BUSINESS"}},
		}},
		NumberOfBookableSeats:  4,
		ValidatingAirlineCodes: []string{"AF"},
		LastTicketingDate:      "2024-03-20",
		Itineraries: []RawItinerary{
			{
				Duration: "PT9H30M",
				Segments: []RawSegment{
					{
						Departure:   RawEndpoint{IataCode: "JFK", Terminal: "4", At: "2024-03-15T18:30:00"},
						Arrival:     RawEndpoint{IataCode: "CDG", At: "2024-03-16T07:45:00"},
						CarrierCode: "AF",
						Number:      "23",
						Aircraft:    RawAircraft{Code: "77W"},
						Duration:    "PT7H15M",
					},
					{
						Departure:   RawEndpoint{IataCode: "CDG", At: "2024-03-16T09:30:00"},
						Arrival:     RawEndpoint{IataCode: "NCE", At: "2024-03-16T11:00:00"},
						CarrierCode: "A5",
						Number:      "4380",
						Aircraft:    RawAircraft{Code: "223"},
						Duration:    "PT1H30M",
					},
				},
			},
			{
				Duration: "PT8H50M",
				Segments: []RawSegment{{
					Departure:   RawEndpoint{IataCode: "NCE", At: "2024-03-22T12:00:00"},
					Arrival:     RawEndpoint{IataCode: "JFK", At: "2024-03-22T15:50:00"},
					CarrierCode: "AF",
					Number:      "7",
					Aircraft:    RawAircraft{Code: "77W"},
					Duration:    "PT8H50M",
				}},
			},
		},
	}
}

func testDictionaries() Dictionaries {
	return Dictionaries{
		Carriers: map[string]string{"AF": "Air France"},
		Aircraft: map[string]string{"77W": "Boeing 777-300ER"},
	}
}

func TestNormalizeOffer(t *testing.T) {
	got, err := NormalizeOffer(rawRoundTrip(), testDictionaries())
	require.NoError(t, err)

	assert.Equal(t, "offer-1", got.ID)
	assert.Equal(t, 842.50, got.Price.Total)
	assert.Equal(t, "USD", got.Price.Currency)
	assert.Equal(t, 421.25, got.Price.PerAdult)
	assert.Equal(t, "BUSINESS", got.BookingClass)
	assert.Equal(t, 4, got.SeatsRemaining)
	assert.Equal(t, "AF", got.ValidatingAirline)

	require.Len(t, got.Itineraries, 2)
	assert.Equal(t, 1, got.Itineraries[0].Stops)
	assert.Equal(t, 0, got.Itineraries[1].Stops)

	// order-preserving dedup across both itineraries
	diff := cmp.Diff([]string{"AF", "A5"}, got.Airlines)
	if diff != "" {
		t.Fatalf("airlines mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"Air France", "A5"}, got.AirlineNames)

	seg := got.Itineraries[0].Segments[0]
	assert.Equal(t, "Air France", seg.CarrierName)
	assert.Equal(t, "Boeing 777-300ER", seg.Aircraft)
	assert.Equal(t, "4", seg.Departure.Terminal)

	// unresolved codes fall back to the raw code
	assert.Equal(t, "223", got.Itineraries[0].Segments[1].Aircraft)
}

func TestNormalizeOffer_Defaults(t *testing.T) {
	raw := rawRoundTrip()
	raw.TravelerPricings = nil

	got, err := NormalizeOffer(raw, Dictionaries{})
	require.NoError(t, err)

	assert.Equal(t, CabinEconomy, got.BookingClass)
	assert.Equal(t, got.Price.Total, got.Price.PerAdult)
	assert.Equal(t, "AF", got.Itineraries[0].Segments[0].CarrierName)
}

func TestNormalizeOffer_Malformed(t *testing.T) {
	malformedRequest := func(mutate func(*RawOffer)) func(t *testing.T) {
		return func(t *testing.T) {
			raw := rawRoundTrip()
			mutate(&raw)

			_, err := NormalizeOffer(raw, testDictionaries())
			assert.Error(t, err)
		}
	}

	t.Run("bad_price", malformedRequest(func(r *RawOffer) { r.Price.Total = "not-a-number" }))
	t.Run("bad_per_adult", malformedRequest(func(r *RawOffer) { r.TravelerPricings[0].Price.Total = "??" }))
	t.Run("no_itineraries", malformedRequest(func(r *RawOffer) { r.Itineraries = nil }))
	t.Run("empty_segments", malformedRequest(func(r *RawOffer) { r.Itineraries[0].Segments = nil }))
}

func TestNormalizeOffers_SkipsMalformed(t *testing.T) {
	good := rawRoundTrip()
	bad := rawRoundTrip()
	bad.ID = "offer-2"
	bad.Price.Total = "broken"

	got, err := NormalizeOffers(context.Background(), []RawOffer{good, bad}, testDictionaries())
	require.NoError(t, err)

	assert.Equal(t, []string{"offer-1"}, offerIDs(got))
}

func TestNormalizeOffers_AllMalformed(t *testing.T) {
	bad := rawRoundTrip()
	bad.Price.Total = "broken"

	_, err := NormalizeOffers(context.Background(), []RawOffer{bad}, testDictionaries())
	assert.Error(t, err)
}

func TestNormalizeOffers_EmptyBatch(t *testing.T) {
	got, err := NormalizeOffers(context.Background(), nil, Dictionaries{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
