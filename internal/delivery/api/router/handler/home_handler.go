package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the landing page content
type HomeHandler struct {
	promotionUC usecase.PromotionUsecase
}

// NewHomeHandler is the constructor for HomeHandler
func NewHomeHandler(promotionUC usecase.PromotionUsecase) *HomeHandler {
	return &HomeHandler{promotionUC: promotionUC}
}

// Featured returns the hero candidate. It always answers 200; an empty
// candidate means the generic hero.
func (h *HomeHandler) Featured(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return response.Success(c, http.StatusOK, h.promotionUC.ResolveFeatured(c.Request().Context()))
}
