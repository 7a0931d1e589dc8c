package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderUseCaseInterface define a interface para o use case
type OrderUseCaseInterface interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddToCart(ctx context.Context, userID string, req AddToCartRequest) (*Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error)
	CreateOrderFromCart(ctx context.Context, userID string, address ShippingAddress) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) (*Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]*Order, error)
	GetOrder(ctx context.Context, orderID, userID string) (*Order, error)
}

// OrderHandler contém os handlers HTTP
type OrderHandler struct {
	useCase OrderUseCaseInterface
}

// NewOrderHandler cria uma nova instância de OrderHandler
func NewOrderHandler(useCase OrderUseCaseInterface) *OrderHandler {
	return &OrderHandler{
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

func userIDFromHeader(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "Missing required header: X-User-Id")
		return "", false
	}
	return userID, true
}

// GetCart busca o carrinho do usuário autenticado
func (h *OrderHandler) GetCart(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	cart, err := h.useCase.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, cart)
}

// AddToCart adiciona um item ao carrinho
func (h *OrderHandler) AddToCart(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.useCase.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, cart)
}

// UpdateCartItem ajusta a quantidade de um item do carrinho
func (h *OrderHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.useCase.UpdateCartItem(c.Request.Context(), userID, c.Param("productId"), req.Quantity)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrItemNotInCart) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, cart)
}

// RemoveFromCart remove um item do carrinho
func (h *OrderHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	cart, err := h.useCase.RemoveFromCart(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrItemNotInCart) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, cart)
}

// CreateOrder cria um pedido a partir do carrinho (API interna,
// chamada pelo checkout-service)
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var address ShippingAddress
	if err := c.ShouldBindJSON(&address); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.useCase.CreateOrderFromCart(c.Request.Context(), userID, address)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartEmpty) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusCreated, order)
}

// UpdateOrderStatus atualiza o status do pedido (API interna)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.useCase.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

// ListOrders busca os pedidos do usuário autenticado
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	orders, err := h.useCase.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, orders)
}

// GetOrder busca um pedido do usuário autenticado
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("orderId"), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			respondError(c, http.StatusForbidden, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

// HealthCheck verifica a saúde do serviço
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "order-service",
	})
}
