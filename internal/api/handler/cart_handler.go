package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// CartHandler handles HTTP requests for cart items.
type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// List handles GET /carts?email=E. The route's guards have already
// established that E, when present, is the caller's own email; without E
// the answer is an empty list.
//
// @Summary      List the caller's cart
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Cart owner; must equal the token email"
// @Success      200    {array}   domain.CartItem
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /carts [get]
func (h *CartHandler) List(c echo.Context) error {
	items, err := h.carts.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add handles POST /carts.
//
// @Summary      Add an item to a cart
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        body  body      cartItemRequest  true  "Cart item"
// @Success      200   {object}  insertResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /carts [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req cartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.carts.Add(c.Request().Context(), domain.CartItem{
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
		Email:      req.Email,
	}, actorEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertResponse{Acknowledged: true, InsertedID: id})
}

// Remove handles DELETE /carts/:id.
//
// @Summary      Remove an item from a cart
// @Tags         carts
// @Produce      json
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /carts/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	n, err := h.carts.Remove(c.Request().Context(), c.Param("id"), actorEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}
