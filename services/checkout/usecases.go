package main

import (
	"context"
	"fmt"
	"log"
)

// CheckoutUseCase orquestra a SAGA de checkout sobre os três
// collaborators. Cada invocação executa em uma única thread lógica:
// as chamadas remotas são síncronas e estritamente ordenadas, sem
// fan-out, e nenhuma chamada remota é retentada.
type CheckoutUseCase struct {
	orders    OrderGateway
	inventory InventoryGateway
	payments  PaymentGateway
}

// NewCheckoutUseCase cria uma nova instância de CheckoutUseCase
func NewCheckoutUseCase(
	orders OrderGateway,
	inventory InventoryGateway,
	payments PaymentGateway,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:    orders,
		inventory: inventory,
		payments:  payments,
	}
}

// ProcessCheckout executa a SAGA de checkout:
//
//	START -> CART_FETCHED -> ORDER_CREATED -> INVENTORY_RESERVED
//	      -> PAYMENT_CAPTURED -> CONFIRMED
//
// Passos antes de ORDER_CREATED falham fatalmente sem compensação
// (nada foi criado). Passos depois são compensados exatamente uma vez,
// best-effort, sincronamente, antes de retornar. Sempre produz
// exatamente um resultado terminal.
func (uc *CheckoutUseCase) ProcessCheckout(ctx context.Context, userID string, req CheckoutRequest) (result *CheckoutResult) {
	log.Printf("🚀 Starting checkout | UserID: %s", userID)

	sc := NewSagaContext(userID)

	// Um defeito não modelado em qualquer ponto após ORDER_CREATED cai
	// na falha mais conservadora: compensa apenas os passos cujos flags
	// estão setados, na ordem fixa refund -> release -> cancel.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Checkout panicked | UserID: %s | Error: %v", userID, r)
			uc.compensate(ctx, sc)
			result = FailureResult(FailureUpstreamUnavailable, fmt.Sprintf("Checkout failed: %v", r))
		}
	}()

	// Step 1: busca e valida o carrinho
	log.Printf("➡️ Step 1: Getting cart | UserID: %s", userID)
	stepCtx, span := StartSagaStepSpan(ctx, "get_cart", sc)
	cart, err := uc.orders.GetCart(stepCtx, userID)
	span.End()
	if err != nil {
		return FailureResult(kindOf(err), "Checkout failed: "+reasonOf(err))
	}
	if len(cart.Items) == 0 {
		log.Printf("❌ Cart is empty | UserID: %s", userID)
		return FailureResult(FailurePrecondition, "Cart is empty")
	}
	sc.Items = cart.Items
	sc.TotalAmount = cart.TotalPrice
	sc.State = StateCartFetched
	log.Printf("✅ Cart retrieved with %d items, total: %.2f", len(sc.Items), sc.TotalAmount)

	// Step 2: cria o pedido (status PENDING)
	log.Printf("➡️ Step 2: Creating order | UserID: %s", userID)
	stepCtx, span = StartSagaStepSpan(ctx, "create_order", sc)
	orderID, err := uc.orders.CreateOrder(stepCtx, userID, req.ShippingAddress)
	span.End()
	if err != nil {
		// Fatal e não compensável: nada foi criado
		return FailureResult(kindOf(err), "Checkout failed: "+reasonOf(err))
	}
	sc.OrderID = orderID
	sc.State = StateOrderCreated

	// Step 3: reserva o estoque
	log.Printf("➡️ Step 3: Reserving inventory | OrderID: %s", sc.OrderID)
	stepCtx, span = StartSagaStepSpan(ctx, "reserve_inventory", sc)
	reserved, err := uc.inventory.Reserve(stepCtx, sc.Items)
	span.End()
	if err != nil {
		log.Printf("❌ Inventory service failed, cancelling order | OrderID: %s", sc.OrderID)
		uc.cancelOrder(ctx, sc.OrderID)
		sc.State = StateCancelled
		return FailureResult(kindOf(err), "Checkout failed: "+reasonOf(err))
	}
	if !reserved {
		log.Printf("❌ Inventory reservation failed, cancelling order | OrderID: %s", sc.OrderID)
		uc.cancelOrder(ctx, sc.OrderID)
		sc.State = StateCancelled
		return FailureResult(FailureBusinessRejection, "Insufficient stock for one or more items")
	}
	sc.InventoryReserved = true
	sc.State = StateInventoryReserved

	// Step 4: captura o pagamento
	log.Printf("➡️ Step 4: Processing payment | OrderID: %s | Amount: %.2f", sc.OrderID, sc.TotalAmount)
	stepCtx, span = StartSagaStepSpan(ctx, "capture_payment", sc)
	transactionID, err := uc.payments.Charge(stepCtx, sc.OrderID, userID, sc.TotalAmount, req.PaymentMethod)
	span.End()
	if err != nil {
		// Compensação: devolve o estoque e cancela o pedido
		log.Printf("❌ Payment failed: %v | OrderID: %s", err, sc.OrderID)
		uc.inventory.Release(ctx, sc.Items)
		uc.cancelOrder(ctx, sc.OrderID)
		sc.State = StateCancelled
		return FailureResult(kindOf(err), "Payment failed: "+reasonOf(err))
	}
	sc.TransactionID = transactionID
	sc.State = StatePaymentCaptured

	// Step 5: confirma pedido e estoque
	log.Printf("➡️ Step 5: Confirming order and inventory | OrderID: %s", sc.OrderID)
	stepCtx, span = StartSagaStepSpan(ctx, "confirm_order", sc)
	err = uc.orders.UpdateOrderStatus(stepCtx, sc.OrderID, OrderStatusConfirmed)
	span.End()
	if err != nil {
		// Dinheiro já capturado e estoque reservado: desfaz tudo em
		// ordem reversa antes de reportar a falha
		log.Printf("❌ Failed to confirm order, unwinding | OrderID: %s", sc.OrderID)
		uc.compensate(ctx, sc)
		return FailureResult(kindOf(err), "Checkout failed: "+reasonOf(err))
	}
	uc.inventory.Confirm(ctx, sc.Items)
	sc.State = StateConfirmed

	log.Printf("✅ Checkout completed successfully | OrderID: %s | TransactionID: %s", sc.OrderID, sc.TransactionID)
	return SuccessResult(sc.OrderID, sc.TransactionID)
}
