package main

import (
	"errors"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotRefundable       = errors.New("only completed transactions can be refunded")
)

// TransactionStatus representa os estados de uma transação de pagamento
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
	TransactionStatusRefunded  = "REFUNDED"
)

// Transaction representa uma transação de pagamento
type Transaction struct {
	ID            string    `json:"id" db:"id"`
	OrderID       string    `json:"orderId" db:"order_id"`
	UserID        string    `json:"userId" db:"user_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Currency      string    `json:"currency" db:"currency"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	Status        string    `json:"status" db:"status"`
	GatewayRef    string    `json:"gatewayRef,omitempty" db:"gateway_ref"`
	FailureReason string    `json:"failureReason,omitempty" db:"failure_reason"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// NewTransaction cria uma nova instância de Transaction em estado PENDING
func NewTransaction(id, orderID, userID string, amount float64, currency, paymentMethod string) *Transaction {
	return &Transaction{
		ID:            id,
		OrderID:       orderID,
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		Status:        TransactionStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// Complete marca a transação como capturada pelo gateway
func (t *Transaction) Complete(gatewayRef string) {
	t.Status = TransactionStatusCompleted
	t.GatewayRef = gatewayRef
	t.UpdatedAt = time.Now()
}

// Fail marca a transação como recusada, guardando o motivo
func (t *Transaction) Fail(reason string) {
	t.Status = TransactionStatusFailed
	t.FailureReason = reason
	t.UpdatedAt = time.Now()
}

// Refund marca a transação como estornada. Apenas transações COMPLETED
// podem ser estornadas.
func (t *Transaction) Refund(refundRef string) error {
	if t.Status != TransactionStatusCompleted {
		return ErrNotRefundable
	}
	t.Status = TransactionStatusRefunded
	t.GatewayRef = refundRef
	t.UpdatedAt = time.Now()
	return nil
}
