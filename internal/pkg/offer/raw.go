package offer

// Raw wire types mirroring the upstream flight-offer payload. Only the
// fields the normalizer reads are decoded.

type RawOffer struct {
	ID                     string            `json:"id"`
	Price                  RawPrice          `json:"price"`
	Itineraries            []RawItinerary    `json:"itineraries"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	LastTicketingDate      string            `json:"lastTicketingDate"`
}

type RawPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type RawItinerary struct {
	Duration string       `json:"duration"`
	Segments []RawSegment `json:"segments"`
}

type RawSegment struct {
	Departure   RawEndpoint `json:"departure"`
	Arrival     RawEndpoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Aircraft    RawAircraft `json:"aircraft"`
	Duration    string      `json:"duration"`
}

type RawEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type RawAircraft struct {
	Code string `json:"code"`
}

type TravelerPricing struct {
	Price       RawPrice     `json:"price"`
	FareDetails []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	Cabin string `json:"cabin"`
}

// Dictionaries resolve carrier and aircraft codes to display names.
// Both maps are optional and may be partial; a missing entry means the
// raw code doubles as the name.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}
