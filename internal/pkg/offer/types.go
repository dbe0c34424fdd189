package offer

// Cabin classes accepted by the search API.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// TimeSlot labels a departure-hour bucket.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// StopBucket groups itineraries by outbound stop count.
// BucketTwoPlus covers two or more stops.
type StopBucket int

const (
	BucketNonStop StopBucket = 0
	BucketOneStop StopBucket = 1
	BucketTwoPlus StopBucket = 2
)

// FlightOffer is the canonical offer entity. It is immutable once
// normalized; every derived view works on copies.
type FlightOffer struct {
	ID                string      `json:"id"`
	Price             PriceInfo   `json:"price"`
	Itineraries       []Itinerary `json:"itineraries"`
	Airlines          []string    `json:"airlines"`
	AirlineNames      []string    `json:"airline_names"`
	BookingClass      string      `json:"booking_class"`
	SeatsRemaining    int         `json:"seats_remaining,omitempty"`
	ValidatingAirline string      `json:"validating_airline,omitempty"`
	LastTicketingDate string      `json:"last_ticketing_date,omitempty"`
}

type PriceInfo struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	PerAdult float64 `json:"per_adult"`
}

// Itinerary is one direction of travel. Index 0 in
// FlightOffer.Itineraries is always the outbound leg.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
	Stops    int       `json:"stops"`
}

type Segment struct {
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	CarrierCode  string   `json:"carrier_code"`
	CarrierName  string   `json:"carrier_name"`
	FlightNumber string   `json:"flight_number"`
	Aircraft     string   `json:"aircraft,omitempty"`
	Duration     string   `json:"duration,omitempty"`
}

type Endpoint struct {
	IataCode string `json:"iata_code"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// Outbound returns the first itinerary, or a zero value when the
// offer has none. Callers treat the zero value defensively.
func (o FlightOffer) Outbound() Itinerary {
	if len(o.Itineraries) == 0 {
		return Itinerary{}
	}

	return o.Itineraries[0]
}

// OutboundStopBucket maps the outbound stop count to its filter bucket.
func (o FlightOffer) OutboundStopBucket() StopBucket {
	stops := o.Outbound().Stops
	if stops >= 2 {
		return BucketTwoPlus
	}

	return StopBucket(stops)
}

// OutboundDeparture returns the "at" timestamp of the first outbound
// segment, empty when the offer has no segments.
func (o FlightOffer) OutboundDeparture() string {
	segments := o.Outbound().Segments
	if len(segments) == 0 {
		return ""
	}

	return segments[0].Departure.At
}

// Airline is one selectable carrier facet entry.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Facets are derived from the current offer collection only; they are
// recomputed whenever the collection changes.
type Facets struct {
	PriceRange        [2]float64         `json:"price_range"`
	AvailableAirlines []Airline          `json:"available_airlines"`
	StopsCounts       map[StopBucket]int `json:"stops_counts"`
}
