package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailcore/inventory-system/internal/core/ports"
)

// AssignmentHandler exposes the administrative user-store assignment API.
// Routes are gated by the stores.assign capability through the authorization
// middleware; handlers only validate referents and apply the change.
type AssignmentHandler struct {
	index  ports.AssignmentIndex
	users  ports.UserRepository
	stores ports.StoreRepository
}

func NewAssignmentHandler(index ports.AssignmentIndex, users ports.UserRepository, stores ports.StoreRepository) *AssignmentHandler {
	return &AssignmentHandler{index: index, users: users, stores: stores}
}

// Assign grants a user access to a store. Idempotent.
//
// @Summary      Assign a user to a store
// @Tags         assignments
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /stores/{store_id}/users/{user_id} [put]
func (h *AssignmentHandler) Assign(c echo.Context) error {
	userID, storeID, err := h.referents(c)
	if err != nil {
		return err
	}
	if err := h.index.Assign(c.Request().Context(), userID, storeID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unassign removes a user's access to a store. Idempotent.
//
// @Summary      Remove a user from a store
// @Tags         assignments
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /stores/{store_id}/users/{user_id} [delete]
func (h *AssignmentHandler) Unassign(c echo.Context) error {
	userID, storeID, err := h.referents(c)
	if err != nil {
		return err
	}
	if err := h.index.Unassign(c.Request().Context(), userID, storeID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnassignAll drops every store assignment a user holds.
//
// @Summary      Remove a user from all stores
// @Tags         assignments
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{user_id}/stores [delete]
func (h *AssignmentHandler) UnassignAll(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")
	if _, err := h.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := h.index.UnassignAll(ctx, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// referents resolves and validates both path parameters. Assigning against a
// missing user or store is a 404, not a silent junction row.
func (h *AssignmentHandler) referents(c echo.Context) (userID, storeID string, err error) {
	ctx := c.Request().Context()
	userID = c.Param("user_id")
	storeID = c.Param("store_id")

	if _, err := h.users.FindByID(ctx, userID); err != nil {
		return "", "", err
	}
	if _, err := h.stores.FindByID(ctx, storeID); err != nil {
		return "", "", err
	}
	return userID, storeID, nil
}
