package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// ChargeRequest é o corpo da captura de pagamento
type ChargeRequest struct {
	OrderID       string  `json:"orderId" binding:"required"`
	UserID        string  `json:"userId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

// PaymentUseCase contém a lógica de negócio de pagamentos
type PaymentUseCase struct {
	repository TransactionRepository
	gateway    CardGateway
}

// NewPaymentUseCase cria uma nova instância de PaymentUseCase
func NewPaymentUseCase(repository TransactionRepository, gateway CardGateway) *PaymentUseCase {
	return &PaymentUseCase{
		repository: repository,
		gateway:    gateway,
	}
}

// Charge registra a transação, captura no gateway e grava o desfecho.
// A transação fica FAILED no banco quando a captura é recusada, e o
// erro de recusa é propagado para o handler classificar.
func (uc *PaymentUseCase) Charge(ctx context.Context, req ChargeRequest) (*Transaction, error) {
	log.Printf("➡️ [CHARGE] OrderID: %s | UserID: %s | Amount: %.2f %s",
		req.OrderID, req.UserID, req.Amount, req.Currency)

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	txn := NewTransaction(uuid.New().String(), req.OrderID, req.UserID, req.Amount, currency, req.PaymentMethod)
	if err := uc.repository.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	gatewayRef, err := uc.gateway.Capture(req.Amount, currency, req.PaymentMethod)
	if err != nil {
		txn.Fail(err.Error())
		if updateErr := uc.repository.UpdateTransaction(ctx, txn); updateErr != nil {
			log.Printf("❌ Failed to record declined transaction %s: %v", txn.ID, updateErr)
		}

		var decline *DeclineError
		if errors.As(err, &decline) {
			log.Printf("❌ Payment declined | TransactionID: %s | Reason: %s", txn.ID, decline.Reason)
			return txn, decline
		}
		log.Printf("❌ Gateway capture failed | TransactionID: %s | Error: %v", txn.ID, err)
		return txn, fmt.Errorf("gateway capture failed: %w", err)
	}

	txn.Complete(gatewayRef)
	if err := uc.repository.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record capture: %w", err)
	}

	log.Printf("✅ Payment captured | TransactionID: %s | GatewayRef: %s", txn.ID, gatewayRef)
	return txn, nil
}

// Refund estorna uma transação COMPLETED
func (uc *PaymentUseCase) Refund(ctx context.Context, transactionID string) (*Transaction, error) {
	log.Printf("↩️ [REFUND] TransactionID: %s", transactionID)

	txn, err := uc.repository.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != TransactionStatusCompleted {
		return nil, ErrNotRefundable
	}

	refundRef, err := uc.gateway.Refund(txn.GatewayRef, txn.Amount)
	if err != nil {
		return nil, fmt.Errorf("gateway refund failed: %w", err)
	}

	if err := txn.Refund(refundRef); err != nil {
		return nil, err
	}
	if err := uc.repository.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}

	log.Printf("✅ Payment refunded | TransactionID: %s | RefundRef: %s", transactionID, refundRef)
	return txn, nil
}

// GetTransaction busca uma transação pelo id
func (uc *PaymentUseCase) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	return uc.repository.GetTransaction(ctx, transactionID)
}

// GetOrderTransactions lista as transações de um pedido
func (uc *PaymentUseCase) GetOrderTransactions(ctx context.Context, orderID string) ([]*Transaction, error) {
	return uc.repository.GetTransactionsByOrder(ctx, orderID)
}
