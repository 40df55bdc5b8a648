package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartpkg "github.com/mikios34/storefront-backend/cart"
)

// CartHandler serves anonymous carts. Knowing the cart id is enough to use it.
type CartHandler struct {
	service cartpkg.Service
}

func NewCartHandler(svc cartpkg.Service) *CartHandler { return &CartHandler{service: svc} }

func (h *CartHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cart, err := h.service.CreateCart(ctx)
		if err != nil {
			respondError(c, err, "failed to create cart")
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

func (h *CartHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cart, err := h.service.GetCart(ctx, id)
		if err != nil {
			respondError(c, err, "failed to load cart")
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func (h *CartHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteCart(ctx, id); err != nil {
			respondError(c, err, "failed to delete cart")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *CartHandler) ListItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		items, err := h.service.ListItems(ctx, id)
		if err != nil {
			respondError(c, err, "failed to list cart items")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

type addCartItemPayload struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// AddItem adds a product to the cart, merging with an existing line for the same product.
func (h *CartHandler) AddItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		var p addCartItemPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		item, err := h.service.AddItem(ctx, id, p.ProductID, p.Quantity)
		if err != nil {
			respondError(c, err, "failed to add cart item")
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func (h *CartHandler) GetItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		itemID, ok := pathUUID(c, "item_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		item, err := h.service.GetItem(ctx, id, itemID)
		if err != nil {
			respondError(c, err, "failed to load cart item")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		itemID, ok := pathUUID(c, "item_id")
		if !ok {
			return
		}
		var p updateCartItemPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		item, err := h.service.UpdateItemQuantity(ctx, id, itemID, p.Quantity)
		if err != nil {
			respondError(c, err, "failed to update cart item")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (h *CartHandler) DeleteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		itemID, ok := pathUUID(c, "item_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteItem(ctx, id, itemID); err != nil {
			respondError(c, err, "failed to delete cart item")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
