package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/middleware"
	orderpkg "github.com/mikios34/storefront-backend/order"
	"github.com/mikios34/storefront-backend/realtime"
)

// EventOrderSync carries the recent orders snapshot sent when a customer connects.
const EventOrderSync = "order.sync"

const syncLimit = 20

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type WSHandler struct {
	hub    *realtime.Hub
	orders orderpkg.Service
}

func NewWSHandler(hub *realtime.Hub) *WSHandler { return &WSHandler{hub: hub} }

// WithOrders wires the order service for the initial sync on customer connect.
func (h *WSHandler) WithOrders(orders orderpkg.Service) *WSHandler {
	h.orders = orders
	return h
}

// CustomerSocket upgrades to WS and registers the customer connection.
func (h *WSHandler) CustomerSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetString(middleware.CtxCustomerID)
		if customerID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "customer_id missing in context"})
			return
		}
		userID, ok := callerID(c)
		if !ok {
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		h.hub.RegisterCustomer(customerID, conn)
		if h.orders != nil {
			h.sync(c.Request.Context(), customerID, userID)
		}
		// no inbound customer events; hold the connection until the client leaves
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.UnregisterCustomer(customerID, conn)
				break
			}
		}
	}
}

func (h *WSHandler) sync(parent context.Context, customerID string, userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()
	list, _, err := h.orders.List(ctx, orderpkg.Viewer{UserID: userID}, syncLimit, 0)
	if err != nil {
		return
	}
	_ = h.hub.NotifyCustomer(customerID, EventOrderSync, struct {
		Orders []entity.Order `json:"orders"`
	}{Orders: list})
}

// AdminSocket upgrades to WS and subscribes the admin to the new-order feed.
func (h *WSHandler) AdminSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)
		if userID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "user_id missing in context"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		h.hub.RegisterAdmin(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.UnregisterAdmin(userID, conn)
				break
			}
		}
	}
}
