package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	orderpkg "github.com/mikios34/storefront-backend/order"
)

type OrderHandler struct {
	service orderpkg.Service
}

func NewOrderHandler(svc orderpkg.Service) *OrderHandler {
	return &OrderHandler{service: svc}
}

func viewer(c *gin.Context) (orderpkg.Viewer, bool) {
	uid, ok := callerID(c)
	if !ok {
		return orderpkg.Viewer{}, false
	}
	return orderpkg.Viewer{UserID: uid, IsAdmin: isAdmin(c)}, true
}

type checkoutPayload struct {
	CartID uuid.UUID `json:"cart_id" binding:"required"`
}

// Checkout places an order for the caller from the contents of a cart.
func (h *OrderHandler) Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		var p checkoutPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		created, err := h.service.Checkout(ctx, uid, p.CartID)
		if err != nil {
			respondError(c, err, "failed to create order")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListOrders returns every order to admins and the caller's own orders otherwise.
func (h *OrderHandler) ListOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := viewer(c)
		if !ok {
			return
		}
		pg, ok := parsePage(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		orders, total, err := h.service.List(ctx, v, pg.limit(), pg.offset())
		if err != nil {
			respondError(c, err, "failed to list orders")
			return
		}
		c.JSON(http.StatusOK, paginated(c, pg, total, orders))
	}
}

func (h *OrderHandler) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := viewer(c)
		if !ok {
			return
		}
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		o, err := h.service.Get(ctx, v, id)
		if err != nil {
			respondError(c, err, "failed to load order")
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

type updateOrderPayload struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

func (h *OrderHandler) UpdatePaymentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		var p updateOrderPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		o, err := h.service.UpdatePaymentStatus(ctx, id, entity.PaymentStatus(p.PaymentStatus))
		if err != nil {
			respondError(c, err, "failed to update order")
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func (h *OrderHandler) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.Delete(ctx, id); err != nil {
			respondError(c, err, "failed to delete order")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
