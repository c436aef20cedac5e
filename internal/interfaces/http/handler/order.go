package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
)

// OrderReconciler folds upstream order state into local orders
type OrderReconciler interface {
	RefreshOrder(ctx context.Context, orderID int64) (*order.Order, error)
	RequestRefill(ctx context.Context, orderID int64) error
	RequestCancel(ctx context.Context, orderID int64) (*order.Order, error)
}

// OrderHandler exposes order reconciliation API endpoints
type OrderHandler struct {
	BaseHandler
	reconciler OrderReconciler
	repo       order.Repository
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(reconciler OrderReconciler, repo order.Repository) *OrderHandler {
	return &OrderHandler{
		reconciler: reconciler,
		repo:       repo,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/open", h.ListOpen)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/refresh", h.Refresh)
		orders.POST("/:id/refill", h.Refill)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              int64           `json:"id"`
	ServiceID       int64           `json:"service_id"`
	ProviderID      uuid.UUID       `json:"provider_id"`
	ExternalOrderID string          `json:"external_order_id,omitempty"`
	Quantity        int             `json:"quantity"`
	Charge          decimal.Decimal `json:"charge"`
	StartCount      int             `json:"start_count"`
	Remains         int             `json:"remains"`
	Status          string          `json:"status"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		ServiceID:       o.ServiceID,
		ProviderID:      o.ProviderID,
		ExternalOrderID: o.ExternalOrderID,
		Quantity:        o.Quantity,
		Charge:          o.Charge,
		StartCount:      o.StartCount,
		Remains:         o.Remains,
		Status:          o.Status.String(),
	}
}

func (h *OrderHandler) orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.BadRequest(c, "Invalid order id")
		return 0, false
	}
	return id, true
}

// Get returns a single order by id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}

// ListOpen returns non-terminal orders, oldest first
func (h *OrderHandler) ListOpen(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			h.BadRequest(c, "limit must be between 1 and 1000")
			return
		}
		limit = parsed
	}

	orders, err := h.repo.FindOpen(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	h.Success(c, resp)
}

// Refresh pulls the order's upstream state and folds it into the local row
func (h *OrderHandler) Refresh(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.reconciler.RefreshOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}

// Refill asks the provider to refill the order
func (h *OrderHandler) Refill(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.reconciler.RequestRefill(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Cancel asks the provider to cancel the order and marks it canceled once
// the provider confirms
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.reconciler.RequestCancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}
