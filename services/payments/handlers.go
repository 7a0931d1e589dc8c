package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PaymentUseCaseInterface define a interface para o use case
type PaymentUseCaseInterface interface {
	Charge(ctx context.Context, req ChargeRequest) (*Transaction, error)
	Refund(ctx context.Context, transactionID string) (*Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	GetOrderTransactions(ctx context.Context, orderID string) ([]*Transaction, error)
}

// PaymentHandler contém os handlers HTTP
type PaymentHandler struct {
	useCase PaymentUseCaseInterface
}

// NewPaymentHandler cria uma nova instância de PaymentHandler
func NewPaymentHandler(useCase PaymentUseCaseInterface) *PaymentHandler {
	return &PaymentHandler{
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

// Charge captura um pagamento. Recusas do gateway respondem 402 com o
// motivo no envelope; falhas técnicas respondem 502.
func (h *PaymentHandler) Charge(c *gin.Context) {
	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	txn, err := h.useCase.Charge(c.Request.Context(), req)
	if err != nil {
		var decline *DeclineError
		if errors.As(err, &decline) {
			respondError(c, http.StatusPaymentRequired, decline.Reason)
			return
		}
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}
	respondSuccess(c, http.StatusCreated, txn)
}

// Refund estorna uma transação capturada
func (h *PaymentHandler) Refund(c *gin.Context) {
	transactionID := c.Param("transactionId")

	txn, err := h.useCase.Refund(c.Request.Context(), transactionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotFound):
			respondError(c, http.StatusNotFound, "Transaction not found: "+transactionID)
		case errors.Is(err, ErrNotRefundable):
			respondError(c, http.StatusUnprocessableEntity, "Only completed transactions can be refunded")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondSuccess(c, http.StatusOK, txn)
}

// GetTransaction busca uma transação pelo id
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("transactionId")

	txn, err := h.useCase.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found: "+transactionID)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, txn)
}

// GetOrderTransactions lista as transações de um pedido
func (h *PaymentHandler) GetOrderTransactions(c *gin.Context) {
	orderID := c.Param("orderId")

	transactions, err := h.useCase.GetOrderTransactions(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, transactions)
}

// HealthCheck verifica se o serviço está funcionando
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "payment-service",
	})
}
