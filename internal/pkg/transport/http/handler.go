package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Aubaid12/Flight-Search-Engine/internal/app/dto"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc adapts a go-kit endpoint to a chi handler: decode,
// invoke, encode, with all failures funneled through ErrorResponse.
func MakeHandlerFunc(
	endpt endpoint.Endpoint,
	decode DecodeRequestFunc,
	encode EncodeResponseFunc,
) http.HandlerFunc {
	return func(respWriter http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		request, err := decode(ctx, req)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		response, err := endpt(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		if err := encode(ctx, respWriter, response); err != nil {
			ErrorResponse(ctx, err, respWriter)
		}
	}
}

// DecodeRequest decodes a JSON body into T. When T implements
// render.Binder its Bind hook runs for validation.
func DecodeRequest[T any](_ context.Context, req *http.Request) (interface{}, error) {
	request := new(T)

	if binder, ok := any(request).(render.Binder); ok {
		if err := render.Bind(req, binder); err != nil {
			return nil, fmt.Errorf("bind request: %w", err)
		}

		return request, nil
	}

	if err := render.DecodeJSON(req.Body, request); err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}

	return request, nil
}

// DecodeLocationsRequest reads the autocomplete query string.
func DecodeLocationsRequest(_ context.Context, req *http.Request) (interface{}, error) {
	request := &dto.LocationsRequest{
		Keyword: req.URL.Query().Get("keyword"),
	}

	if rawLimit := req.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return nil, fmt.Errorf("parse limit: %w", err)
		}

		request.Limit = limit
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("error validate request: %w", err)
	}

	return request, nil
}
