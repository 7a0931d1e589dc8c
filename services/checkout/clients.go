package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// OrderGateway abstrai o orders-service (carrinho + pedidos)
type OrderGateway interface {
	// GetCart busca o carrinho pendente do usuário. Um carrinho vazio
	// buscado com sucesso retorna zero itens; a política de carrinho
	// vazio é decisão do orquestrador, não do cliente.
	GetCart(ctx context.Context, userID string) (*Cart, error)

	// CreateOrder cria um pedido em status PENDING a partir do carrinho
	CreateOrder(ctx context.Context, userID string, address ShippingAddress) (string, error)

	// UpdateOrderStatus atualiza o status do pedido (CONFIRMED ou CANCELLED)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
}

// InventoryGateway abstrai o inventory-service (reserva de estoque)
type InventoryGateway interface {
	// Reserve tenta reservar todos os itens, na ordem da lista,
	// abortando no primeiro item sem estoque. Erro de transporte é
	// retornado separadamente para classificação da falha.
	Reserve(ctx context.Context, items []LineItem) (bool, error)

	// Release devolve uma reserva (compensação). Best-effort: falhas
	// são apenas logadas, nunca propagadas.
	Release(ctx context.Context, items []LineItem)

	// Confirm consome permanentemente uma reserva após o pagamento.
	// Best-effort: falhas são apenas logadas.
	Confirm(ctx context.Context, items []LineItem)
}

// PaymentGateway abstrai o payments-service (captura e estorno)
type PaymentGateway interface {
	// Charge captura a cobrança e retorna o transaction id. Recusa de
	// negócio e falha de transporte são distinguidas pelo FailureKind.
	Charge(ctx context.Context, orderID, userID string, amount float64, method string) (string, error)

	// Refund estorna uma cobrança (compensação). Best-effort: falhas
	// são apenas logadas; intervenção manual é o fallback documentado.
	Refund(ctx context.Context, transactionID string)
}

// newServiceClient cria um cliente resty com timeout fixo e propagação
// de trace context W3C para o collaborator
func newServiceClient(baseURL string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	client.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
		otel.GetTextMapPropagator().Inject(r.Context(), propagation.HeaderCarrier(r.Header))
		return nil
	})

	return client
}

// HTTPOrderClient implementa OrderGateway sobre HTTP
type HTTPOrderClient struct {
	http *resty.Client
}

// NewOrderClient cria uma nova instância de HTTPOrderClient
func NewOrderClient(baseURL string, timeout time.Duration) *HTTPOrderClient {
	return &HTTPOrderClient{http: newServiceClient(baseURL, timeout)}
}

func (c *HTTPOrderClient) GetCart(ctx context.Context, userID string) (*Cart, error) {
	var envelope ApiResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-User-Id", userID).
		SetResult(&envelope).
		Get("/api/orders/cart")
	if err != nil {
		log.Printf("❌ Failed to get cart: %v", err)
		return nil, NewUpstreamError("order service unreachable", err)
	}
	if resp.IsError() || !envelope.Success {
		log.Printf("❌ Failed to get cart: status=%d message=%s", resp.StatusCode(), envelope.Message)
		return nil, NewUpstreamError("failed to get cart", nil)
	}

	var cart Cart
	if err := json.Unmarshal(envelope.Data, &cart); err != nil {
		return nil, NewUpstreamError("invalid cart payload", err)
	}
	return &cart, nil
}

func (c *HTTPOrderClient) CreateOrder(ctx context.Context, userID string, address ShippingAddress) (string, error) {
	var envelope ApiResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-User-Id", userID).
		SetBody(map[string]string{
			"street":  address.Street,
			"city":    address.City,
			"zip":     address.Zip,
			"country": address.Country,
		}).
		SetResult(&envelope).
		Post("/api/orders/internal/create")
	if err != nil {
		log.Printf("❌ Failed to create order: %v", err)
		return "", NewUpstreamError("order service unreachable", err)
	}
	if resp.IsError() || !envelope.Success {
		log.Printf("❌ Failed to create order: status=%d message=%s", resp.StatusCode(), envelope.Message)
		return "", NewUpstreamError("failed to create order", nil)
	}

	var order struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(envelope.Data, &order); err != nil {
		return "", NewUpstreamError("invalid order payload", err)
	}

	log.Printf("✅ Order created: %s", order.ID)
	return order.ID, nil
}

func (c *HTTPOrderClient) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	var envelope ApiResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"status": status}).
		SetResult(&envelope).
		Put("/api/orders/internal/" + orderID + "/status")
	if err != nil {
		log.Printf("❌ Failed to update order %s status to %s: %v", orderID, status, err)
		return NewUpstreamError("failed to update order status", err)
	}
	if resp.IsError() || !envelope.Success {
		log.Printf("❌ Failed to update order %s status to %s: status=%d", orderID, status, resp.StatusCode())
		return NewUpstreamError("failed to update order status", nil)
	}

	log.Printf("✅ Order %s status updated to %s", orderID, status)
	return nil
}

// HTTPInventoryClient implementa InventoryGateway sobre HTTP
type HTTPInventoryClient struct {
	http *resty.Client
}

// NewInventoryClient cria uma nova instância de HTTPInventoryClient
func NewInventoryClient(baseURL string, timeout time.Duration) *HTTPInventoryClient {
	return &HTTPInventoryClient{http: newServiceClient(baseURL, timeout)}
}

func (c *HTTPInventoryClient) Reserve(ctx context.Context, items []LineItem) (bool, error) {
	log.Printf("➡️ [RESERVE] Reserving inventory for %d items", len(items))

	for _, item := range items {
		var envelope ApiResponse

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(map[string]interface{}{
				"productId": item.ProductID,
				"quantity":  item.Quantity,
			}).
			SetResult(&envelope).
			SetError(&envelope).
			Post("/api/inventory/reserve")
		if err != nil {
			log.Printf("❌ Inventory reservation failed for product %s: %v", item.ProductID, err)
			return false, NewUpstreamError("inventory service unreachable", err)
		}
		if resp.IsError() || !envelope.Success {
			log.Printf("❌ Failed to reserve inventory for product: %s", item.ProductID)
			return false, nil
		}
	}

	log.Printf("✅ Inventory reserved successfully")
	return true, nil
}

func (c *HTTPInventoryClient) Release(ctx context.Context, items []LineItem) {
	log.Printf("↩️ [RELEASE] Releasing inventory for %d items", len(items))

	for _, item := range items {
		_, err := c.http.R().
			SetContext(ctx).
			SetBody(map[string]interface{}{
				"productId": item.ProductID,
				"quantity":  item.Quantity,
			}).
			Post("/api/inventory/release")
		if err != nil {
			// Continue even if release fails - compensating transaction
			log.Printf("❌ Failed to release inventory for product %s: %v", item.ProductID, err)
		}
	}

	log.Printf("✅ Inventory release finished")
}

func (c *HTTPInventoryClient) Confirm(ctx context.Context, items []LineItem) {
	log.Printf("➡️ [CONFIRM] Confirming inventory for %d items", len(items))

	for _, item := range items {
		_, err := c.http.R().
			SetContext(ctx).
			SetBody(map[string]interface{}{
				"productId": item.ProductID,
				"quantity":  item.Quantity,
			}).
			Post("/api/inventory/confirm")
		if err != nil {
			log.Printf("❌ Failed to confirm inventory for product %s: %v", item.ProductID, err)
		}
	}

	log.Printf("✅ Inventory confirmation finished")
}

// HTTPPaymentClient implementa PaymentGateway sobre HTTP
type HTTPPaymentClient struct {
	http *resty.Client
}

// NewPaymentClient cria uma nova instância de HTTPPaymentClient
func NewPaymentClient(baseURL string, timeout time.Duration) *HTTPPaymentClient {
	return &HTTPPaymentClient{http: newServiceClient(baseURL, timeout)}
}

func (c *HTTPPaymentClient) Charge(ctx context.Context, orderID, userID string, amount float64, method string) (string, error) {
	log.Printf("➡️ [CHARGE] OrderID: %s | Amount: %.2f | Method: %s", orderID, amount, method)

	var envelope ApiResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"orderId":       orderID,
			"userId":        userID,
			"amount":        amount,
			"currency":      "USD",
			"paymentMethod": method,
		}).
		SetResult(&envelope).
		SetError(&envelope).
		Post("/api/payments")
	if err != nil {
		log.Printf("❌ Payment service error: %v", err)
		return "", NewUpstreamError("payment service unreachable", err)
	}
	if resp.IsError() || !envelope.Success {
		// Só 402 é o contrato de recusa do gateway; qualquer outro erro
		// do payments-service é falha técnica, mesmo com mensagem
		if resp.StatusCode() == http.StatusPaymentRequired && envelope.Message != "" {
			log.Printf("❌ Payment declined: %s", envelope.Message)
			return "", NewBusinessError(envelope.Message)
		}
		log.Printf("❌ Payment service error: status=%d message=%s", resp.StatusCode(), envelope.Message)
		return "", NewUpstreamError("payment service error", nil)
	}

	var payment struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(envelope.Data, &payment); err != nil {
		return "", NewUpstreamError("invalid payment payload", err)
	}

	log.Printf("✅ Payment successful: %s", payment.ID)
	return payment.ID, nil
}

func (c *HTTPPaymentClient) Refund(ctx context.Context, transactionID string) {
	log.Printf("↩️ [REFUND] TransactionID: %s", transactionID)

	resp, err := c.http.R().
		SetContext(ctx).
		Post("/api/payments/internal/" + transactionID + "/refund")
	if err != nil {
		// Continue even if refund fails - needs manual intervention
		log.Printf("❌ Failed to refund payment %s: %v", transactionID, err)
		return
	}
	if resp.IsError() {
		log.Printf("❌ Failed to refund payment %s: status=%d", transactionID, resp.StatusCode())
		return
	}

	log.Printf("✅ Payment refunded successfully: %s", transactionID)
}
