package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aubaid12/Flight-Search-Engine/internal/app/dto"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/amadeus"
	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/offer"
)

// InventoryClient is the slice of the upstream API the service needs.
type InventoryClient interface {
	SearchOffers(ctx context.Context, params amadeus.SearchParams) (amadeus.RawSearchResult, error)
	SearchLocations(ctx context.Context, keyword string, limit int) ([]amadeus.Location, error)
}

// OfferCacher stores normalized collections between identical searches.
type OfferCacher interface {
	CacheKey(key offer.SearchKey) string
	LockKey(key offer.SearchKey) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetOffers(ctx context.Context, key string) ([]offer.FlightOffer, error)
	GetMeta(ctx context.Context, key string) (offer.CacheMeta, error)
	SetOffers(ctx context.Context, key string, offers []offer.FlightOffer,
		meta offer.CacheMeta, expiration time.Duration) error
}

type SearchService struct {
	Client          InventoryClient
	Cache           OfferCacher
	CacheExpiration time.Duration
	LockTimeout     time.Duration
}

func NewSearchService(client InventoryClient, cache OfferCacher,
	cacheExpiration, lockTimeout time.Duration) *SearchService {
	return &SearchService{
		Client:          client,
		Cache:           cache,
		CacheExpiration: cacheExpiration,
		LockTimeout:     lockTimeout,
	}
}

// SearchFlights runs one search end to end: fetch (cache-first),
// normalize, derive facets, filter, sort, and aggregate the price
// histogram. Filtering to an empty subset is a valid result; only an
// empty upstream collection is an error.
func (s *SearchService) SearchFlights(
	ctx context.Context,
	req dto.SearchRequest,
) (dto.SearchResponse, error) {
	startTime := time.Now()

	offers, meta, cacheHit, err := s.fetchOffers(ctx, searchParams(req))
	if err != nil {
		return dto.SearchResponse{}, err
	}

	if len(offers) == 0 {
		return dto.SearchResponse{}, ErrNoOffersFound
	}

	facets := offer.ComputeFacets(offers)
	spec := req.Filters.ToFilterSpec(facets)
	filtered := offer.Apply(offers, spec, facets)
	sorted := offer.Sort(filtered, req.SortCriterion())
	bins, stats := offer.BuildHistogram(offers, filtered)

	return dto.SearchResponse{
		SearchCriteria: req,
		Metadata: dto.Metadata{
			TotalResults:    len(offers),
			FilteredResults: len(sorted),
			SkippedOffers:   meta.SkippedRaw,
			SearchTimeMs:    int(time.Since(startTime).Milliseconds()),
			CacheHit:        cacheHit,
		},
		Facets:        facets,
		Offers:        sorted,
		Histogram:     bins,
		Stats:         stats,
		ActiveFilters: offer.HasActiveFilters(spec, facets),
	}, nil
}

// SearchLocations serves autocomplete suggestions. Upstream failures
// are swallowed to an empty list: a suggestion box must never surface
// a hard error.
func (s *SearchService) SearchLocations(ctx context.Context, req dto.LocationsRequest) dto.LocationsResponse {
	locations, err := s.Client.SearchLocations(ctx, req.Keyword, req.Limit)
	if err != nil {
		slog.WarnContext(ctx, "location search failed",
			slog.String("keyword", req.Keyword),
			slog.String("error", err.Error()))

		return dto.LocationsResponse{Locations: []dto.Location{}}
	}

	results := make([]dto.Location, len(locations))
	for i, loc := range locations {
		results[i] = dto.Location{
			IataCode:    loc.IataCode,
			Name:        loc.Name,
			CityName:    loc.CityName,
			CountryCode: loc.CountryCode,
			Type:        loc.Type,
		}
	}

	return dto.LocationsResponse{Locations: results}
}

// Search implements session.Searcher so an embedded session controller
// shares the service's cache-first fetch path.
func (s *SearchService) Search(ctx context.Context, params amadeus.SearchParams) ([]offer.FlightOffer, error) {
	offers, _, _, err := s.fetchOffers(ctx, params)

	return offers, err
}

func (s *SearchService) fetchOffers(ctx context.Context,
	params amadeus.SearchParams,
) ([]offer.FlightOffer, offer.CacheMeta, bool, error) {
	key := offer.SearchKey{
		Origin:        params.Origin,
		Destination:   params.Destination,
		DepartureDate: params.DepartureDate,
		ReturnDate:    params.ReturnDate,
		TravelClass:   params.TravelClass,
		Adults:        params.Adults,
		Children:      params.Children,
		Infants:       params.Infants,
	}

	cacheKey := s.Cache.CacheKey(key)
	lockKey := s.Cache.LockKey(key)

	offers, err := s.Cache.GetOffers(ctx, cacheKey)
	if err == nil {
		meta, metaErr := s.Cache.GetMeta(ctx, cacheKey)
		if metaErr != nil {
			slog.WarnContext(ctx, "failed to get cache metadata", slog.String("error", metaErr.Error()))
		}

		return offers, meta, true, nil
	}

	slog.DebugContext(ctx, "offer cache miss", slog.String("key", cacheKey))

	result, err := s.Client.SearchOffers(ctx, params)
	if err != nil {
		return nil, offer.CacheMeta{}, false, fmt.Errorf("search offers: %w", err)
	}

	offers, err = offer.NormalizeOffers(ctx, result.Offers, result.Dictionaries)
	if err != nil {
		return nil, offer.CacheMeta{}, false, fmt.Errorf("normalize offers: %w", err)
	}

	meta := offer.CacheMeta{
		FetchedAt:   time.Now(),
		TotalOffers: len(offers),
		SkippedRaw:  len(result.Offers) - len(offers),
	}

	// Only one of several identical concurrent searches fills the
	// cache; the rest serve their freshly fetched copy directly.
	acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
	if err != nil {
		return nil, offer.CacheMeta{}, false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer s.Cache.ReleaseLock(ctx, lockKey)

	if acquired {
		if err := s.Cache.SetOffers(ctx, cacheKey, offers, meta, s.CacheExpiration); err != nil {
			return nil, offer.CacheMeta{}, false, fmt.Errorf("failed to set offers to cache: %w", err)
		}
	}

	return offers, meta, false, nil
}

func searchParams(req dto.SearchRequest) amadeus.SearchParams {
	travelClass := req.TravelClass
	if travelClass == "" {
		travelClass = offer.CabinEconomy
	}

	return amadeus.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		TravelClass:   travelClass,
		NonStop:       req.NonStop,
		MaxResults:    req.MaxResults,
	}
}
