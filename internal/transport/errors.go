package transport

import (
	"errors"
	"net/http"

	"agrolink-be/internal/address"
	"agrolink-be/internal/order"
	"agrolink-be/internal/product"
	"agrolink-be/internal/subscription"
	"agrolink-be/internal/user"

	"github.com/gin-gonic/gin"
)

// writeError maps the domain error taxonomy onto HTTP status codes. Unknown
// errors are internal and deliberately not echoed to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrUnauthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, order.ErrRoleViolation),
		errors.Is(err, order.ErrNotOrderOwner),
		errors.Is(err, order.ErrNotItemOwner),
		errors.Is(err, address.ErrNotAddressOwner),
		errors.Is(err, product.ErrNotProductOwner),
		errors.Is(err, subscription.ErrNotSubscriptionOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case order.IsNotFound(err),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, subscription.ErrInvalidTransition),
		errors.Is(err, subscription.ErrAlreadySubscribed),
		errors.Is(err, user.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case order.IsValidationError(err),
		errors.Is(err, subscription.ErrInvalidFrequency),
		errors.Is(err, subscription.ErrOrderNotCompleted),
		errors.Is(err, product.ErrNothingToUpdate),
		errors.Is(err, user.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
