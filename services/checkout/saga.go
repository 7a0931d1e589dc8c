package main

import (
	"context"
	"log"
)

// SagaState representa os estados do caminho feliz linear da SAGA,
// com as ramificações de falha levando a CANCELLED
const (
	StateStart             = "START"
	StateCartFetched       = "CART_FETCHED"
	StateOrderCreated      = "ORDER_CREATED"
	StateInventoryReserved = "INVENTORY_RESERVED"
	StatePaymentCaptured   = "PAYMENT_CAPTURED"
	StateConfirmed         = "CONFIRMED"
	StateCancelled         = "CANCELLED"
)

// SagaContext é o estado mutável de uma única invocação da SAGA.
// Pertence exclusivamente a uma invocação: nunca é compartilhado entre
// requisições concorrentes e não sobrevive ao retorno da chamada.
//
// Invariantes que definem quais compensações são legais:
//   - InventoryReserved == true  implica OrderID != ""
//   - TransactionID != ""        implica InventoryReserved && OrderID != ""
type SagaContext struct {
	UserID            string
	Items             []LineItem
	TotalAmount       float64
	OrderID           string
	InventoryReserved bool
	TransactionID     string
	State             string
}

// NewSagaContext cria o contexto de uma nova invocação da SAGA
func NewSagaContext(userID string) *SagaContext {
	return &SagaContext{
		UserID: userID,
		State:  StateStart,
	}
}

// compensate desfaz os passos já completados em ordem cronológica
// reversa estrita: primeiro o dinheiro, depois o estoque, por fim o
// registro do pedido. Cada compensação só é emitida se a precondição
// do invariante correspondente vale, nunca para um passo que não
// completou. Best-effort: falhas aqui são engolidas e apenas logadas,
// pois nenhuma compensação para "compensação falhou" existe sem um
// saga log persistido.
func (uc *CheckoutUseCase) compensate(ctx context.Context, sc *SagaContext) {
	log.Printf("↩️ [COMPENSATE] OrderID: %s | Reserved: %t | TransactionID: %s",
		sc.OrderID, sc.InventoryReserved, sc.TransactionID)

	ctx, span := StartCompensationSpan(ctx, sc)
	defer span.End()

	if sc.TransactionID != "" {
		uc.payments.Refund(ctx, sc.TransactionID)
	}
	if sc.InventoryReserved {
		uc.inventory.Release(ctx, sc.Items)
	}
	if sc.OrderID != "" {
		uc.cancelOrder(ctx, sc.OrderID)
	}

	sc.State = StateCancelled
}

// cancelOrder marca o pedido como CANCELLED. Falha aqui é engolida:
// nenhuma recuperação melhor existe sem um saga log persistido.
func (uc *CheckoutUseCase) cancelOrder(ctx context.Context, orderID string) {
	if err := uc.orders.UpdateOrderStatus(ctx, orderID, OrderStatusCancelled); err != nil {
		log.Printf("❌ Failed to cancel order %s: %v", orderID, err)
	}
}
