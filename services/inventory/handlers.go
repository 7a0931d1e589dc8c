package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InventoryUseCaseInterface define a interface para o use case
type InventoryUseCaseInterface interface {
	GetInventory(ctx context.Context, productID string) (*ProductInventory, error)
	SetStock(ctx context.Context, productID string, quantity int, lowStockThreshold int) (*ProductInventory, error)
	ReserveStock(ctx context.Context, productID string, quantity int) error
	ReleaseStock(ctx context.Context, productID string, quantity int) error
	ConfirmStock(ctx context.Context, productID string, quantity int) error
}

// InventoryHandler contém os handlers HTTP
type InventoryHandler struct {
	useCase InventoryUseCaseInterface
}

// NewInventoryHandler cria uma nova instância de InventoryHandler
func NewInventoryHandler(useCase InventoryUseCaseInterface) *InventoryHandler {
	return &InventoryHandler{
		useCase: useCase,
	}
}

// ApiResponse é o envelope de resposta padrão do serviço
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, ApiResponse{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ApiResponse{Success: false, Message: message})
}

// MovementRequest é o corpo das operações de reserva, liberação e confirmação
type MovementRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// SetStockRequest é o corpo do ajuste administrativo de estoque
type SetStockRequest struct {
	Quantity          int `json:"quantity" binding:"gte=0"`
	LowStockThreshold int `json:"lowStockThreshold" binding:"gte=0"`
}

// GetInventory retorna o estoque de um produto
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	productID := c.Param("productId")

	inventory, err := h.useCase.GetInventory(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Inventory not found for product: "+productID)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, inventory)
}

// SetStock cria ou ajusta o estoque de um produto
func (h *InventoryHandler) SetStock(c *gin.Context) {
	productID := c.Param("productId")

	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	inventory, err := h.useCase.SetStock(c.Request.Context(), productID, req.Quantity, req.LowStockThreshold)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, inventory)
}

// ReserveStock reserva estoque para um checkout em andamento
func (h *InventoryHandler) ReserveStock(c *gin.Context) {
	req, ok := bindMovement(c)
	if !ok {
		return
	}

	err := h.useCase.ReserveStock(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			respondError(c, http.StatusConflict, "Insufficient stock for product: "+req.ProductID)
			return
		}
		if errors.Is(err, ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Inventory not found for product: "+req.ProductID)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"productId": req.ProductID, "reserved": req.Quantity})
}

// ReleaseStock devolve uma reserva ao estoque disponível
func (h *InventoryHandler) ReleaseStock(c *gin.Context) {
	req, ok := bindMovement(c)
	if !ok {
		return
	}

	if err := h.useCase.ReleaseStock(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Inventory not found for product: "+req.ProductID)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"productId": req.ProductID, "released": req.Quantity})
}

// ConfirmStock baixa definitivamente o estoque reservado
func (h *InventoryHandler) ConfirmStock(c *gin.Context) {
	req, ok := bindMovement(c)
	if !ok {
		return
	}

	if err := h.useCase.ConfirmStock(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Inventory not found for product: "+req.ProductID)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"productId": req.ProductID, "confirmed": req.Quantity})
}

func bindMovement(c *gin.Context) (MovementRequest, bool) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}

// HealthCheck verifica se o serviço está funcionando
func (h *InventoryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inventory-service",
	})
}
