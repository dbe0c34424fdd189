package offer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
)

// NormalizeOffers converts raw offer records into canonical FlightOffers.
// A record that fails to normalize is skipped and logged rather than
// aborting the batch; only a batch with no usable offers is an error.
func NormalizeOffers(ctx context.Context, raws []RawOffer, dict Dictionaries) ([]FlightOffer, error) {
	offers := make([]FlightOffer, 0, len(raws))

	for _, raw := range raws {
		normalized, err := NormalizeOffer(raw, dict)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed offer",
				slog.String("offer_id", raw.ID),
				slog.String("error", err.Error()))

			continue
		}

		offers = append(offers, normalized)
	}

	if len(offers) == 0 && len(raws) > 0 {
		return nil, exception.NewParseError(
			fmt.Sprintf("all %d offers in the response were malformed", len(raws)), nil)
	}

	return offers, nil
}

// NormalizeOffer converts one raw record. Price fields arrive as
// decimal strings; an unparseable price is an upstream contract
// violation and fails the record.
func NormalizeOffer(raw RawOffer, dict Dictionaries) (FlightOffer, error) {
	if len(raw.Itineraries) == 0 {
		return FlightOffer{}, exception.NewParseError("offer has no itineraries", nil)
	}

	total, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return FlightOffer{}, exception.NewParseError(
			fmt.Sprintf("invalid price total %q", raw.Price.Total), err)
	}

	perAdult := total
	if len(raw.TravelerPricings) > 0 && raw.TravelerPricings[0].Price.Total != "" {
		perAdult, err = strconv.ParseFloat(raw.TravelerPricings[0].Price.Total, 64)
		if err != nil {
			return FlightOffer{}, exception.NewParseError(
				fmt.Sprintf("invalid per-adult price %q", raw.TravelerPricings[0].Price.Total), err)
		}
	}

	itineraries := make([]Itinerary, 0, len(raw.Itineraries))
	for _, rawItin := range raw.Itineraries {
		if len(rawItin.Segments) == 0 {
			return FlightOffer{}, exception.NewParseError("itinerary has no segments", nil)
		}

		segments := make([]Segment, 0, len(rawItin.Segments))
		for _, rawSeg := range rawItin.Segments {
			segments = append(segments, Segment{
				Departure: Endpoint{
					IataCode: rawSeg.Departure.IataCode,
					Terminal: rawSeg.Departure.Terminal,
					At:       rawSeg.Departure.At,
				},
				Arrival: Endpoint{
					IataCode: rawSeg.Arrival.IataCode,
					Terminal: rawSeg.Arrival.Terminal,
					At:       rawSeg.Arrival.At,
				},
				CarrierCode:  rawSeg.CarrierCode,
				CarrierName:  resolveCode(dict.Carriers, rawSeg.CarrierCode),
				FlightNumber: rawSeg.Number,
				Aircraft:     resolveCode(dict.Aircraft, rawSeg.Aircraft.Code),
				Duration:     rawSeg.Duration,
			})
		}

		itineraries = append(itineraries, Itinerary{
			Duration: rawItin.Duration,
			Segments: segments,
			Stops:    len(segments) - 1,
		})
	}

	airlines := collectAirlines(itineraries)
	airlineNames := make([]string, len(airlines))
	for i, code := range airlines {
		airlineNames[i] = resolveCode(dict.Carriers, code)
	}

	validating := ""
	if len(raw.ValidatingAirlineCodes) > 0 {
		validating = raw.ValidatingAirlineCodes[0]
	}

	return FlightOffer{
		ID: raw.ID,
		Price: PriceInfo{
			Total:    total,
			Currency: raw.Price.Currency,
			PerAdult: perAdult,
		},
		Itineraries:       itineraries,
		Airlines:          airlines,
		AirlineNames:      airlineNames,
		BookingClass:      bookingClass(raw),
		SeatsRemaining:    raw.NumberOfBookableSeats,
		ValidatingAirline: validating,
		LastTicketingDate: raw.LastTicketingDate,
	}, nil
}

// collectAirlines deduplicates carrier codes across all itineraries,
// preserving first-seen order.
func collectAirlines(itineraries []Itinerary) []string {
	seen := make(map[string]bool)
	var airlines []string

	for _, itin := range itineraries {
		for _, seg := range itin.Segments {
			if seen[seg.CarrierCode] {
				continue
			}

			seen[seg.CarrierCode] = true
			airlines = append(airlines, seg.CarrierCode)
		}
	}

	return airlines
}

func bookingClass(raw RawOffer) string {
	if len(raw.TravelerPricings) > 0 && len(raw.TravelerPricings[0].FareDetails) > 0 {
		if cabin := raw.TravelerPricings[0].FareDetails[0].Cabin; cabin != "" {
			return cabin
		}
	}

	return CabinEconomy
}

func resolveCode(names map[string]string, code string) string {
	if name, ok := names[code]; ok {
		return name
	}

	return code
}
