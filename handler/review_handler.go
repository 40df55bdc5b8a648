package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reviewpkg "github.com/mikios34/storefront-backend/review"
)

type ReviewHandler struct {
	service reviewpkg.Service
}

func NewReviewHandler(svc reviewpkg.Service) *ReviewHandler { return &ReviewHandler{service: svc} }

type reviewPayload struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Rate        int    `json:"rate" binding:"required"`
}

func (p reviewPayload) input() reviewpkg.Input {
	return reviewpkg.Input{Name: p.Name, Description: p.Description, Rate: p.Rate}
}

func (h *ReviewHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		reviews, err := h.service.List(ctx, productID)
		if err != nil {
			respondError(c, err, "failed to list reviews")
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// Create records a review by the authenticated caller.
func (h *ReviewHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		uid, ok := callerID(c)
		if !ok {
			return
		}
		var p reviewPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		rv, err := h.service.Create(ctx, productID, uid, p.input())
		if err != nil {
			respondError(c, err, "failed to create review")
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

func (h *ReviewHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		reviewID, ok := pathUUID(c, "review_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		rv, err := h.service.Get(ctx, productID, reviewID)
		if err != nil {
			respondError(c, err, "failed to load review")
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

func (h *ReviewHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		reviewID, ok := pathUUID(c, "review_id")
		if !ok {
			return
		}
		uid, ok := callerID(c)
		if !ok {
			return
		}
		var p reviewPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		rv, err := h.service.Update(ctx, productID, reviewID, uid, p.input())
		if err != nil {
			respondError(c, err, "failed to update review")
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

func (h *ReviewHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		reviewID, ok := pathUUID(c, "review_id")
		if !ok {
			return
		}
		uid, ok := callerID(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.Delete(ctx, productID, reviewID, uid); err != nil {
			respondError(c, err, "failed to delete review")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
