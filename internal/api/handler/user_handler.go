package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
	"github.com/bistroboss/bistro-api/internal/pkg/metrics"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Register handles POST /users. Registering an email that already exists
// is a successful no-op. Body fields beyond name, email and photoURL are
// kept as profile fields; _id and role are never taken from the client.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User"
// @Success      200   {object}  insertResponse
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidPayload)
	}
	req, err := newRegisterUserRequest(body)
	if err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	res, err := h.users.Register(c.Request().Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Profile:  profileFields(body),
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		metrics.UserRegistrationsTotal.WithLabelValues("exists").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: domain.ErrUserExists.Error()})
	}
	metrics.UserRegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, insertResponse{Acknowledged: true, InsertedID: res.InsertedID})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	n, err := h.users.Delete(c.Request().Context(), c.Param("id"), actorEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}

// Promote handles PATCH /users/admin/:id.
//
// @Summary      Grant the admin role
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  updateResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) Promote(c echo.Context) error {
	res, err := h.users.Promote(c.Request().Context(), c.Param("id"), actorEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateResponse{
		Acknowledged:  true,
		MatchedCount:  res.Matched,
		ModifiedCount: res.Modified,
	})
}

// AdminStatus handles GET /users/admin/:email.
//
// @Summary      Check whether the caller is an admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email; must equal the token email"
// @Success      200    {object}  adminStatusResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /users/admin/{email} [get]
func (h *UserHandler) AdminStatus(c echo.Context) error {
	role, err := h.users.RoleOf(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatusResponse{Admin: role.IsAdmin()})
}

// newRegisterUserRequest reads the modelled fields out of a decoded body.
func newRegisterUserRequest(body map[string]any) (*registerUserRequest, error) {
	req := &registerUserRequest{}
	for key, dst := range map[string]*string{
		"name":     &req.Name,
		"email":    &req.Email,
		"photoURL": &req.PhotoURL,
	} {
		v, ok := body[key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", domain.ErrInvalidPayload, key)
		}
		*dst = s
	}
	return req, nil
}

// profileFields returns the body fields that are not modelled on a user.
func profileFields(body map[string]any) map[string]any {
	var out map[string]any
	for k, v := range body {
		switch k {
		case "_id", "role", "name", "email", "photoURL":
			continue
		}
		if k == "" || strings.HasPrefix(k, "$") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}
