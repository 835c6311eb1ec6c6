package handler

import (
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
)

// Handlers groups every handler so the router receives one dependency.
type Handlers struct {
	Home         *HomeHandler
	Venue        *VenueHandler
	Artist       *ArtistHandler
	Show         *ShowHandler
	API          *APIHandler
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	EmailPreview *EmailPreviewHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Home:         NewHomeHandler(s, services),
		Venue:        NewVenueHandler(s, services),
		Artist:       NewArtistHandler(s, services),
		Show:         NewShowHandler(s, services),
		API:          NewAPIHandler(s, services),
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		EmailPreview: NewEmailPreviewHandler(s),
	}
}
