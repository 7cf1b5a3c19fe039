package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrolink-be/internal/order"
	"agrolink-be/internal/subscription"
	"agrolink-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Unauthenticated", order.ErrUnauthenticated, http.StatusUnauthorized},
		{"InvalidCredentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Forbidden", order.ErrForbidden, http.StatusForbidden},
		{"RoleViolation", order.ErrRoleViolation, http.StatusForbidden},
		{"NotItemOwner", order.ErrNotItemOwner, http.StatusForbidden},
		{"OrderNotFound", order.ErrOrderNotFound, http.StatusNotFound},
		{"WrappedProductNotFound", fmt.Errorf("%w: abc", order.ErrProductNotFound), http.StatusNotFound},
		{"SubscriptionNotFound", subscription.ErrSubscriptionNotFound, http.StatusNotFound},
		{"InvalidTransition", order.ErrInvalidTransition, http.StatusConflict},
		{"AlreadySubscribed", subscription.ErrAlreadySubscribed, http.StatusConflict},
		{"EmailExists", user.ErrEmailExists, http.StatusConflict},
		{"EmptyOrder", order.ErrEmptyOrder, http.StatusBadRequest},
		{"InsufficientStock", fmt.Errorf("%w: Carrots", order.ErrInsufficientStock), http.StatusBadRequest},
		{"ReasonRequired", order.ErrReasonRequired, http.StatusBadRequest},
		{"OrderNotCompleted", subscription.ErrOrderNotCompleted, http.StatusBadRequest},
		{"Unknown", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeError(c, errors.New("dial tcp 10.0.0.5:5432: connect refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "internal server error")
}
