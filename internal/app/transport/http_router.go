package transport

import (
	"log/slog"
	"net/http"

	"github.com/Aubaid12/Flight-Search-Engine/internal/app/config"
	"github.com/Aubaid12/Flight-Search-Engine/internal/app/dto"
	"github.com/Aubaid12/Flight-Search-Engine/internal/app/endpoints"
	httptransport "github.com/Aubaid12/Flight-Search-Engine/internal/pkg/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/flights/search", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.SearchRequest],
			httptransport.ResponseWithBody,
		))

		router.Get("/locations", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchLocations,
			httptransport.DecodeLocationsRequest,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
