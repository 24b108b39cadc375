package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlacesHandler serves address autocomplete
type PlacesHandler struct {
	addressUC usecase.AddressUsecase
}

// NewPlacesHandler is the constructor for PlacesHandler
func NewPlacesHandler(addressUC usecase.AddressUsecase) *PlacesHandler {
	return &PlacesHandler{addressUC: addressUC}
}

// AutocompleteResponse tells the client whether to show suggestions at all
type AutocompleteResponse struct {
	Enabled     bool                     `json:"enabled"`
	Predictions []entity.PlacePrediction `json:"predictions"`
}

// Autocomplete returns address suggestions for ?input=
func (h *PlacesHandler) Autocomplete(c echo.Context) error {
	predictions, enabled, err := h.addressUC.Autocomplete(c.Request().Context(), c.QueryParam("input"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AutocompleteResponse{Enabled: enabled, Predictions: predictions})
}
