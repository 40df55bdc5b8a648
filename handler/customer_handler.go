package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	customerpkg "github.com/mikios34/storefront-backend/customer"
	"github.com/mikios34/storefront-backend/entity"
)

const birthDateLayout = "2006-01-02"

// CustomerHandler bundles dependencies for customer-related HTTP handlers.
type CustomerHandler struct {
	service customerpkg.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(svc customerpkg.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: svc}
}

type customerPayload struct {
	Phone      string  `json:"phone" binding:"max=255"`
	BirthDate  *string `json:"birth_date"`
	Membership string  `json:"membership"`
}

func (p customerPayload) request() (customerpkg.UpdateCustomerRequest, error) {
	req := customerpkg.UpdateCustomerRequest{Phone: p.Phone, Membership: entity.Membership(p.Membership)}
	if p.BirthDate != nil && *p.BirthDate != "" {
		t, err := time.Parse(birthDateLayout, *p.BirthDate)
		if err != nil {
			return req, err
		}
		req.BirthDate = &t
	}
	return req, nil
}

func (h *CustomerHandler) bind(c *gin.Context) (customerpkg.UpdateCustomerRequest, bool) {
	var p customerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badPayload(c, err)
		return customerpkg.UpdateCustomerRequest{}, false
	}
	req, err := p.request()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be formatted YYYY-MM-DD", "detail": err.Error()})
		return req, false
	}
	return req, true
}

func (h *CustomerHandler) ListCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		pg, ok := parsePage(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		list, total, err := h.service.ListCustomers(ctx, pg.limit(), pg.offset())
		if err != nil {
			respondError(c, err, "failed to list customers")
			return
		}
		c.JSON(http.StatusOK, paginated(c, pg, total, list))
	}
}

func (h *CustomerHandler) GetCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cust, err := h.service.GetCustomer(ctx, id)
		if err != nil {
			respondError(c, err, "failed to load customer")
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func (h *CustomerHandler) UpdateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		req, ok := h.bind(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cust, err := h.service.UpdateCustomer(ctx, id, req)
		if err != nil {
			respondError(c, err, "failed to update customer")
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func (h *CustomerHandler) DeleteCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteCustomer(ctx, id); err != nil {
			respondError(c, err, "failed to delete customer")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GetProfile returns the caller's own customer profile.
func (h *CustomerHandler) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cust, err := h.service.GetProfile(ctx, uid)
		if err != nil {
			respondError(c, err, "failed to load customer profile")
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func (h *CustomerHandler) UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		req, ok := h.bind(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		cust, err := h.service.UpdateProfile(ctx, uid, req)
		if err != nil {
			respondError(c, err, "failed to update customer profile")
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}
