package transport

import (
	"net/http"

	"agrolink-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	AddressID   string                   `json:"address_id" binding:"required"`
	Items       []createOrderItemRequest `json:"items" binding:"required"`
	IsRecurring bool                     `json:"is_recurring"`
	Frequency   *order.Frequency         `json:"frequency"`
	CustomDays  *int                     `json:"custom_days"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address_id"})
		return
	}

	input := order.CreateOrderInput{
		AddressID:   addressID,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		CustomDays:  req.CustomDays,
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		input.Items = append(input.Items, order.CreateOrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.svc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	filter, limit, offset := parseOrderListQuery(c)

	list, err := h.svc.ListOrders(c.Request.Context(), filter, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	orders := make([]orderResponse, 0, len(list.Orders))
	for _, o := range list.Orders {
		orders = append(orders, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": toPaginationResponse(list.Pagination),
	})
}

type manageOrderRequest struct {
	Action      *order.Action    `json:"action"`
	IsRecurring *bool            `json:"is_recurring"`
	Frequency   *order.Frequency `json:"frequency"`
	CustomDays  *int             `json:"custom_days"`
}

func (h *OrderHandler) Manage(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req manageOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.ManageOrder(c.Request.Context(), orderID, order.ManageOrderInput{
		Action:      req.Action,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		CustomDays:  req.CustomDays,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

type decideItemRequest struct {
	Decision        order.ItemStatus `json:"decision" binding:"required"`
	RejectionReason *string          `json:"rejection_reason"`
}

func (h *OrderHandler) DecideItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req decideItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.DecideItem(c.Request.Context(), itemID, req.Decision, req.RejectionReason); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OrderHandler) ListProducerItems(c *gin.Context) {
	var filter *order.ItemFilter
	if status, search := c.Query("status"), c.Query("search"); status != "" || search != "" {
		filter = &order.ItemFilter{}
		if status != "" {
			s := order.ItemStatus(status)
			filter.Status = &s
		}
		if search != "" {
			filter.Search = &search
		}
	}

	limit, offset := parsePagination(c)

	list, err := h.svc.ListProducerItems(c.Request.Context(), filter, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	groups := make([]gin.H, 0, len(list.Groups))
	for _, g := range list.Groups {
		items := make([]orderItemResponse, 0, len(g.Items))
		for _, item := range g.Items {
			items = append(items, toItemResponse(item))
		}
		groups = append(groups, gin.H{
			"order_id": g.OrderID.String(),
			"items":    items,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     groups,
		"pagination": toPaginationResponse(list.Pagination),
	})
}

func parseOrderListQuery(c *gin.Context) (*order.OrderFilter, int32, int32) {
	var filter *order.OrderFilter
	if status, search := c.Query("status"), c.Query("search"); status != "" || search != "" {
		filter = &order.OrderFilter{}
		if status != "" {
			s := order.OrderStatus(status)
			filter.Status = &s
		}
		if search != "" {
			filter.Search = &search
		}
	}

	limit, offset := parsePagination(c)
	return filter, limit, offset
}
