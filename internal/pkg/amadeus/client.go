package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
	"github.com/go-redis/redis_rate/v10"
)

const (
	// DefaultMaxResults caps an offer search when the caller does not.
	DefaultMaxResults = 50

	locationLimit    = 10
	minKeywordLength = 2
	rateLimitKey     = "limit:amadeus"
)

// Config holds the client settings resolved from the environment.
type Config struct {
	BaseURL      string
	APIKey       string
	APISecret    string
	Timeout      time.Duration
	RateLimitRPS int
	Limiter      *redis_rate.Limiter
}

// Client talks to the travel-inventory REST API. Token acquisition is
// delegated to an internal TokenProvider and is transparent to
// callers.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       *TokenProvider
	limiter      *redis_rate.Limiter
	rateLimitRPS int
}

func NewClient(cfg Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   httpClient,
		tokens:       NewTokenProvider(cfg.BaseURL, cfg.APIKey, cfg.APISecret, httpClient),
		limiter:      cfg.Limiter,
		rateLimitRPS: cfg.RateLimitRPS,
	}
}

// Location is one airport or city suggestion.
type Location struct {
	IataCode    string `json:"iata_code"`
	Name        string `json:"name"`
	CityName    string `json:"city_name"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
}

// SearchParams describe one offer search.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	TravelClass   string
	NonStop       bool
	MaxResults    int
}

// RawSearchResult is the undecoded offer payload plus the code
// dictionaries the normalizer resolves names against.
type RawSearchResult struct {
	Offers       []offer.RawOffer
	Dictionaries offer.Dictionaries
}

type locationResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		SubType  string `json:"subType"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryCode string `json:"countryCode"`
		} `json:"address"`
	} `json:"data"`
}

type offersResponse struct {
	Data         []offer.RawOffer   `json:"data"`
	Dictionaries offer.Dictionaries `json:"dictionaries"`
}

type apiErrorResponse struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// SearchLocations looks up airport and city suggestions for an
// autocomplete keyword. Keywords shorter than two runes return an
// empty list without touching the network.
func (c *Client) SearchLocations(ctx context.Context, keyword string, limit int) ([]Location, error) {
	if len([]rune(keyword)) < minKeywordLength {
		return []Location{}, nil
	}

	if limit <= 0 {
		limit = locationLimit
	}

	query := url.Values{
		"subType":     {"AIRPORT,CITY"},
		"keyword":     {keyword},
		"page[limit]": {strconv.Itoa(limit)},
	}

	var body locationResponse
	if err := c.get(ctx, "/v1/reference-data/locations?"+query.Encode(), &body); err != nil {
		return nil, err
	}

	locations := make([]Location, 0, len(body.Data))
	for _, loc := range body.Data {
		cityName := loc.Address.CityName
		if cityName == "" {
			cityName = loc.Name
		}

		locations = append(locations, Location{
			IataCode:    loc.IataCode,
			Name:        loc.Name,
			CityName:    cityName,
			CountryCode: loc.Address.CountryCode,
			Type:        loc.SubType,
		})
	}

	return locations, nil
}

// SearchOffers fetches raw flight offers for the given criteria.
// Optional parameters are omitted from the query at their zero
// values, mirroring the upstream API's defaults.
func (c *Client) SearchOffers(ctx context.Context, params SearchParams) (RawSearchResult, error) {
	if params.MaxResults <= 0 {
		params.MaxResults = DefaultMaxResults
	}
	if params.Adults <= 0 {
		params.Adults = 1
	}

	query := url.Values{
		"originLocationCode":      {params.Origin},
		"destinationLocationCode": {params.Destination},
		"departureDate":           {params.DepartureDate},
		"adults":                  {strconv.Itoa(params.Adults)},
		"currencyCode":            {"USD"},
		"max":                     {strconv.Itoa(params.MaxResults)},
	}

	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		query.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		query.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.TravelClass != "" && params.TravelClass != offer.CabinEconomy {
		query.Set("travelClass", params.TravelClass)
	}
	if params.NonStop {
		query.Set("nonStop", "true")
	}

	var body offersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers?"+query.Encode(), &body); err != nil {
		return RawSearchResult{}, err
	}

	return RawSearchResult{Offers: body.Data, Dictionaries: body.Dictionaries}, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("get valid token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exception.NewSearchError("upstream request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		message := fmt.Sprintf("upstream request failed with status %d", resp.StatusCode)
		if len(apiErr.Errors) > 0 && apiErr.Errors[0].Detail != "" {
			message = apiErr.Errors[0].Detail
		}

		return exception.NewSearchError(message, http.StatusBadGateway, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exception.NewSearchError("malformed upstream response", 0, err)
	}

	return nil
}

// allow consults the shared rate limiter before an outbound call. A
// nil limiter disables limiting, which tests rely on.
func (c *Client) allow(ctx context.Context) error {
	if c.limiter == nil || c.rateLimitRPS <= 0 {
		return nil
	}

	res, err := c.limiter.Allow(ctx, rateLimitKey, redis_rate.PerSecond(c.rateLimitRPS))
	if err != nil {
		return fmt.Errorf("rate limit check: %w", err)
	}

	if res.Allowed == 0 {
		return exception.NewSearchError("upstream rate limit exceeded", http.StatusTooManyRequests, nil)
	}

	return nil
}
