package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aubaid12/Flight-Search-Engine/internal/app/dto"
	"github.com/go-kit/kit/endpoint"
)

type SearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
	SearchLocations(ctx context.Context, req dto.LocationsRequest) dto.LocationsResponse
}

type Endpoints struct {
	SearchEndpoint SearchEndpoint
}

type SearchEndpoint struct {
	SearchFlights   endpoint.Endpoint
	SearchLocations endpoint.Endpoint
}

func MakeSearchEndpoint(service SearchService) SearchEndpoint {
	return SearchEndpoint{
		SearchFlights:   makeSearchFlightsEndpoint(service),
		SearchLocations: makeSearchLocationsEndpoint(service),
	}
}

func makeSearchFlightsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return response, nil
	}
}

func makeSearchLocationsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LocationsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		return service.SearchLocations(ctx, *request), nil
	}
}
