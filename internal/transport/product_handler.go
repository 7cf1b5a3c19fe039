package transport

import (
	"net/http"

	"agrolink-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type createProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Price       string  `json:"price" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	ImageURL    *string `json:"image_url"`
}

type productResponse struct {
	ID          string  `json:"id"`
	ProducerID  uint    `json:"producer_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		ProducerID:  p.ProducerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), product.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(p))
}

type updateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
	ImageURL    *string `json:"image_url"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := product.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		ImageURL:    req.ImageURL,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		input.Price = &price
	}

	p, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	opts := product.ListOptions{
		OnlyActive: true,
		Limit:      limit,
		Offset:     offset,
	}
	if search := c.Query("search"); search != "" {
		opts.Search = &search
	}

	result, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}

	products := make([]productResponse, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, toProductResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    result.Total,
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
