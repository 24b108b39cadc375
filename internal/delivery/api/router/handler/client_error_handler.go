package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ClientErrorHandler receives errors reported by the browser
type ClientErrorHandler struct {
	clientErrorUC usecase.ClientErrorUsecase
}

// NewClientErrorHandler is the constructor for ClientErrorHandler
func NewClientErrorHandler(clientErrorUC usecase.ClientErrorUsecase) *ClientErrorHandler {
	return &ClientErrorHandler{clientErrorUC: clientErrorUC}
}

// Report accepts a client error. Reports raised by browser extensions are
// answered the same way but not recorded.
func (h *ClientErrorHandler) Report(c echo.Context) error {
	var req usecase.ClientErrorReport
	if ok, err := bindAndValidate(c, &req, "Invalid error report"); !ok {
		return err
	}

	req.UserAgent = c.Request().UserAgent()
	accepted := h.clientErrorUC.Report(c.Request().Context(), &req)

	return response.Success(c, http.StatusAccepted, map[string]bool{"accepted": accepted})
}
