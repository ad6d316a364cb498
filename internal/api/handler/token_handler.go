package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
	"github.com/bistroboss/bistro-api/internal/pkg/metrics"
)

// TokenHandler issues bearer tokens.
type TokenHandler struct {
	tokens ports.TokenService
}

func NewTokenHandler(tokens ports.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue signs a one-hour token for the asserted email. It does not check
// credentials: callers are trusted to have authenticated the user already.
//
// @Summary      Issue an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Identity claims"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /token [post]
// @Router       /jwt [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	var req tokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.tokens.Issue(c.Request().Context(), domain.IdentityClaims{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
