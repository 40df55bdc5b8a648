package realtime

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Event names pushed to connected clients.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderPaymentStatus = "order.payment_status"
)

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Hub keeps one socket per customer and any number of admin dashboard sockets.
type Hub struct {
	mu         sync.RWMutex
	byCustomer map[string]*wsConn
	admins     map[string]*wsConn
}

func NewHub() *Hub {
	return &Hub{byCustomer: make(map[string]*wsConn), admins: make(map[string]*wsConn)}
}

// wsConn wraps a websocket connection with a write mutex to serialize writes.
type wsConn struct {
	conn Conn
	mu   sync.Mutex
}

func (w *wsConn) send(msg map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(msg)
}

// RegisterCustomer replaces any previous socket held by the customer.
func (h *Hub) RegisterCustomer(customerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.byCustomer[customerID]; ok {
		old.conn.Close()
	}
	h.byCustomer[customerID] = &wsConn{conn: conn}
}

// UnregisterCustomer drops the customer's socket only if it is still conn. A stale read loop
// finishing after a reconnect leaves the newer socket alone.
func (h *Hub) UnregisterCustomer(customerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.byCustomer[customerID]; ok && c.conn == conn {
		c.conn.Close()
		delete(h.byCustomer, customerID)
	}
}

// NotifyCustomer sends an event to the customer if connected.
func (h *Hub) NotifyCustomer(customerID string, event string, payload any) error {
	h.mu.RLock()
	wc, ok := h.byCustomer[customerID]
	h.mu.RUnlock()
	if !ok {
		slog.Debug("ws: customer not connected; drop event", "customer_id", customerID, "event", event)
		return nil
	}
	if err := wc.send(map[string]any{"event": event, "data": payload}); err != nil {
		slog.Warn("ws: write to customer failed", "customer_id", customerID, "event", event, "err", err)
		return err
	}
	return nil
}

// RegisterAdmin adds a dashboard socket keyed by the admin's user id.
func (h *Hub) RegisterAdmin(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.admins[userID]; ok {
		old.conn.Close()
	}
	h.admins[userID] = &wsConn{conn: conn}
}

// UnregisterAdmin drops the admin's socket only if it is still conn.
func (h *Hub) UnregisterAdmin(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.admins[userID]; ok && c.conn == conn {
		c.conn.Close()
		delete(h.admins, userID)
	}
}

// BroadcastAdmins sends the event to every connected admin. Failed sockets are dropped.
func (h *Hub) BroadcastAdmins(event string, payload any) {
	h.mu.RLock()
	targets := make(map[string]*wsConn, len(h.admins))
	for id, c := range h.admins {
		targets[id] = c
	}
	h.mu.RUnlock()

	msg := map[string]any{"event": event, "data": payload}
	for id, c := range targets {
		if err := c.send(msg); err != nil {
			slog.Warn("ws: write to admin failed", "user_id", id, "event", event, "err", err)
			h.UnregisterAdmin(id, c.conn)
		}
	}
}

// OrderPayload is sent for order events.
type OrderPayload struct {
	OrderID       string `json:"order_id"`
	CustomerID    string `json:"customer_id"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total,omitempty"`
}
