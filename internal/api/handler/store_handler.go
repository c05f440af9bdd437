package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailcore/inventory-system/internal/api/middleware"
	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// StoreHandler serves store-scoped reads. Reaching any of these handlers
// means the guard already proved the caller holds the capability and is
// assigned to the store (or is a system admin).
type StoreHandler struct {
	stores ports.StoreRepository
}

func NewStoreHandler(stores ports.StoreRepository) *StoreHandler {
	return &StoreHandler{stores: stores}
}

type storeOverview struct {
	Store  *domain.Store `json:"store"`
	UserID string        `json:"user_id"`
}

// Overview returns the store record the caller is operating in.
//
// @Summary      Store inventory overview
// @Tags         stores
// @Produce      json
// @Success      200  {object}  storeOverview
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /stores/{store_id}/inventory [get]
func (h *StoreHandler) Overview(c echo.Context) error {
	store, err := h.stores.FindByID(c.Request().Context(), c.Param("store_id"))
	if err != nil {
		return err
	}

	userID, _ := c.Get(middleware.CtxUserID).(string)
	return c.JSON(http.StatusOK, storeOverview{Store: store, UserID: userID})
}
