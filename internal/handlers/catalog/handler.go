package catalog

import (
	"garage/config"
	"garage/infras/otel"
	"garage/internal/domains/catalog"
	"garage/shared/constant"
	"garage/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ServiceResponse struct {
	catalog.Service
	SlotCount int `json:"slot_count"`
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
}

type Handler struct {
	catalog *catalog.Catalog
	cfg     *config.Config
	otel    otel.Otel
}

func New(catalog *catalog.Catalog, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		catalog: catalog,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/services", handler.GetServices)
	router.Get("/locations", handler.GetLocations)
}

// GetServices lists the bookable services.
// @Summary List services
// @Description List the bookable services with their bay and the number of slots they occupy.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[[]ServiceResponse]
// @Router /v1/services [get]
func (handler *Handler) GetServices(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	services := handler.catalog.Services()

	res := make([]ServiceResponse, len(services))
	for i, s := range services {
		res[i] = ServiceResponse{Service: s, SlotCount: handler.catalog.SlotCount(s.ID)}
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetLocations lists the workshop locations.
// @Summary List locations
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[LocationsResponse]
// @Router /v1/locations [get]
func (handler *Handler) GetLocations(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocations")
	defer scope.End()

	locations := handler.cfg.Booking.Locations
	if locations == nil {
		locations = []string{}
	}

	response.WithJSON(writer, http.StatusOK, LocationsResponse{Locations: locations})
}
