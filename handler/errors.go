package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminpkg "github.com/mikios34/storefront-backend/admin"
	authpkg "github.com/mikios34/storefront-backend/auth"
	cartpkg "github.com/mikios34/storefront-backend/cart"
	catalogpkg "github.com/mikios34/storefront-backend/catalog"
	customerpkg "github.com/mikios34/storefront-backend/customer"
	orderpkg "github.com/mikios34/storefront-backend/order"
	reviewpkg "github.com/mikios34/storefront-backend/review"
)

var errorStatuses = []struct {
	status int
	errs   []error
}{
	{http.StatusBadRequest, []error{
		authpkg.ErrPasswordMismatch, authpkg.ErrIncompletePasswordChange, authpkg.ErrWrongOldPassword,
		authpkg.ErrEmailNotFound, authpkg.ErrInvalidResetLink,
		catalogpkg.ErrUnknownCollection, catalogpkg.ErrUnknownProduct, catalogpkg.ErrInvalidPrice,
		catalogpkg.ErrInvalidInventory, catalogpkg.ErrInvalidOrdering,
		reviewpkg.ErrInvalidRate,
		cartpkg.ErrUnknownProduct, cartpkg.ErrInvalidQuantity,
		orderpkg.ErrCartNotFound, orderpkg.ErrEmptyCart, orderpkg.ErrUnknownProduct, orderpkg.ErrInvalidPaymentStatus,
		customerpkg.ErrInvalidMembership,
	}},
	{http.StatusUnauthorized, []error{authpkg.ErrInvalidCredentials, authpkg.ErrInvalidToken}},
	{http.StatusForbidden, []error{reviewpkg.ErrNotReviewer, orderpkg.ErrForbidden}},
	{http.StatusNotFound, []error{
		gorm.ErrRecordNotFound, authpkg.ErrUserNotFound,
		catalogpkg.ErrProductNotFound, catalogpkg.ErrCollectionNotFound, catalogpkg.ErrImageNotFound,
		reviewpkg.ErrProductNotFound, reviewpkg.ErrReviewNotFound,
		cartpkg.ErrCartNotFound, cartpkg.ErrItemNotFound,
		orderpkg.ErrCustomerNotFound, orderpkg.ErrOrderNotFound,
		customerpkg.ErrCustomerNotFound,
	}},
	{http.StatusMethodNotAllowed, []error{
		catalogpkg.ErrProductHasOrderItems, catalogpkg.ErrCollectionNotEmpty, customerpkg.ErrCustomerHasOrders,
	}},
	{http.StatusConflict, []error{
		authpkg.ErrUsernameTaken, authpkg.ErrEmailTaken,
		adminpkg.ErrUsernameTaken, adminpkg.ErrEmailTaken,
		catalogpkg.ErrSlugTaken,
	}},
}

func statusFor(err error) int {
	for _, group := range errorStatuses {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status mapped from its sentinel. Unmapped errors become a 500
// carrying msg, with the cause in "detail".
func respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{"error": msg, "detail": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
}
