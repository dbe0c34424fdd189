package service

import (
	"net/http"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
)

var ErrNoOffersFound = exception.ApplicationError{
	Kind:       exception.KindSearch,
	Message:    "no flight offers found",
	StatusCode: http.StatusNotFound,
}
