package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// CatalogHandler serves the public menu and reviews.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Menu handles GET /menu.
//
// @Summary      List menu items
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.MenuItem
// @Failure      500  {object}  ErrorResponse
// @Router       /menu [get]
func (h *CatalogHandler) Menu(c echo.Context) error {
	items, err := h.catalog.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Reviews handles GET /reviews.
//
// @Summary      List reviews
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Review
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews [get]
func (h *CatalogHandler) Reviews(c echo.Context) error {
	reviews, err := h.catalog.Reviews(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
