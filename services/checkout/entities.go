package main

import "encoding/json"

// ShippingAddress representa o endereço de entrega do pedido
type ShippingAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// CheckoutRequest representa a requisição de checkout do usuário
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
}

// LineItem representa um item do carrinho consumido pela SAGA.
// Produzido pelo orders-service e nunca mutado pelo orquestrador.
type LineItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Cart representa o carrinho retornado pelo orders-service
type Cart struct {
	ID         string     `json:"id"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// CheckoutResult representa o resultado terminal de uma invocação da SAGA.
// Exatamente um resultado é produzido por invocação; OrderID e
// TransactionID só estão presentes em caso de sucesso.
type CheckoutResult struct {
	Success       bool        `json:"success"`
	OrderID       string      `json:"orderId,omitempty"`
	TransactionID string      `json:"transactionId,omitempty"`
	Message       string      `json:"message,omitempty"`
	FailureKind   FailureKind `json:"failureKind,omitempty"`
}

// SuccessResult cria um resultado terminal de sucesso
func SuccessResult(orderID, transactionID string) *CheckoutResult {
	return &CheckoutResult{
		Success:       true,
		OrderID:       orderID,
		TransactionID: transactionID,
		Message:       "Order placed successfully",
	}
}

// FailureResult cria um resultado terminal de falha
func FailureResult(kind FailureKind, message string) *CheckoutResult {
	return &CheckoutResult{
		Success:     false,
		Message:     message,
		FailureKind: kind,
	}
}

// ApiResponse é o envelope de resposta usado por todos os collaborators
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OrderStatus representa os status de pedido reconhecidos pelo orders-service
const (
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
)
