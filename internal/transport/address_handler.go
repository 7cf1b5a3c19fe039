package transport

import (
	"net/http"
	"strconv"

	"agrolink-be/internal/address"
	"agrolink-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AddressHandler struct {
	svc address.Service
}

func NewAddressHandler(svc address.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

type createAddressRequest struct {
	Label        string  `json:"label" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	AddressLine1 string  `json:"address_line1" binding:"required"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city" binding:"required"`
	Province     string  `json:"province" binding:"required"`
	PostalCode   string  `json:"postal_code" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	SetAsDefault bool    `json:"set_as_default"`
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.svc.Create(c.Request.Context(), address.CreateAddressInput{
		Label:        req.Label,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, addr)
}

func (h *AddressHandler) List(c *gin.Context) {
	addrs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.svc.SetDefault(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// mustUserID returns the actor id; routes using it sit behind RequireAuth.
func mustUserID(c *gin.Context) uint {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}

func parsePagination(c *gin.Context) (int32, int32) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 32)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32)
	return int32(limit), int32(offset)
}
