package transport

import (
	"net/http"

	"agrolink-be/internal/order"
	"agrolink-be/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	svc subscription.Service
}

func NewSubscriptionHandler(svc subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

type createSubscriptionRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_id"})
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), orderID, order.Frequency(req.Frequency))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription id"})
		return
	}

	sub, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]subscriptionResponse, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, toSubscriptionResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": resp})
}

type subscriptionActionRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *SubscriptionHandler) Manage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription id"})
		return
	}

	var req subscriptionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "pause":
		err = h.svc.Pause(c.Request.Context(), id)
	case "resume":
		err = h.svc.Resume(c.Request.Context(), id)
	case "cancel":
		err = h.svc.Cancel(c.Request.Context(), id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be pause, resume or cancel"})
		return
	}

	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
