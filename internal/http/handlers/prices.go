package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/domain/models"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
)

type priceRequest struct {
	ServiceType  string `json:"service_type"`
	PricePerHour int64  `json:"price_per_hour"`
	IsActive     *bool  `json:"is_active"`
}

// GET /api/admin/prices — includes inactive rows, unlike the public list.
func AdminListPrices(c *gin.Context) {
	prices, err := repositories.PriceRepository{}.List(false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prices": prices})
}

// POST /api/admin/prices
func AdminCreatePrice(c *gin.Context) {
	var req priceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "service_type: required")
		return
	}
	if err := services.ValidateRate(req.PricePerHour); err != nil {
		RespondDomainError(c, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	id, err := repositories.PriceRepository{}.Insert(models.ServicePrice{
		ServiceType:  serviceType,
		PricePerHour: req.PricePerHour,
		IsActive:     active,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

// PUT /api/admin/prices/:id
func AdminUpdatePrice(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req priceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := services.ValidateRate(req.PricePerHour); err != nil {
		RespondDomainError(c, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := (repositories.PriceRepository{}).Update(models.ServicePrice{
		ID:           id,
		PricePerHour: req.PricePerHour,
		IsActive:     active,
	}); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
