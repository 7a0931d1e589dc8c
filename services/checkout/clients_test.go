package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

func writeEnvelope(w http.ResponseWriter, status int, envelope ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}

func TestOrderClient_GetCart(t *testing.T) {
	// Arrange
	cartJSON, _ := json.Marshal(Cart{
		ID: "cart-1",
		Items: []LineItem{
			{ProductID: "p1", Quantity: 2, Price: 49.99},
			{ProductID: "p2", Quantity: 1, Price: 99.99},
		},
		TotalPrice: 199.97,
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/cart", r.URL.Path)
		assert.Equal(t, "user-123", r.Header.Get("X-User-Id"))
		writeEnvelope(w, http.StatusOK, ApiResponse{Success: true, Data: cartJSON})
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, testTimeout)

	// Act
	cart, err := client.GetCart(context.Background(), "user-123")

	// Assert
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, 199.97, cart.TotalPrice)
}

func TestOrderClient_GetCart_Unreachable(t *testing.T) {
	// Arrange: servidor já fechado simula collaborator fora do ar
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOrderClient(server.URL, testTimeout)

	// Act
	_, err := client.GetCart(context.Background(), "user-123")

	// Assert
	require.Error(t, err)
	assert.Equal(t, FailureUpstreamUnavailable, kindOf(err))
}

func TestOrderClient_GetCart_ApplicationFailureEnvelope(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, ApiResponse{Success: false, Message: "cart lookup failed"})
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, testTimeout)

	// Act
	_, err := client.GetCart(context.Background(), "user-123")

	// Assert
	require.Error(t, err)
	assert.Equal(t, FailureUpstreamUnavailable, kindOf(err))
}

func TestOrderClient_CreateOrder(t *testing.T) {
	// Arrange
	orderJSON, _ := json.Marshal(map[string]string{"id": "order-1", "status": "PENDING"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/internal/create", r.URL.Path)
		assert.Equal(t, "user-123", r.Header.Get("X-User-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123 Main St", body["street"])
		assert.Equal(t, "USA", body["country"])

		writeEnvelope(w, http.StatusOK, ApiResponse{Success: true, Data: orderJSON})
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, testTimeout)
	address := ShippingAddress{Street: "123 Main St", City: "New York", Zip: "10001", Country: "USA"}

	// Act
	orderID, err := client.CreateOrder(context.Background(), "user-123", address)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)
}

func TestOrderClient_UpdateOrderStatus(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/internal/order-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, OrderStatusCancelled, body["status"])

		writeEnvelope(w, http.StatusOK, ApiResponse{Success: true})
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, testTimeout)

	// Act
	err := client.UpdateOrderStatus(context.Background(), "order-1", OrderStatusCancelled)

	// Assert
	assert.NoError(t, err)
}

func TestInventoryClient_Reserve_AbortsOnFirstShortfall(t *testing.T) {
	// Arrange: o segundo item falha; o terceiro nunca deve ser pedido
	var requested []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requested = append(requested, body.ProductID)

		if body.ProductID == "p2" {
			writeEnvelope(w, http.StatusConflict, ApiResponse{Success: false, Message: "Insufficient stock"})
			return
		}
		writeEnvelope(w, http.StatusOK, ApiResponse{Success: true})
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, testTimeout)
	items := []LineItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 5},
		{ProductID: "p3", Quantity: 1},
	}

	// Act
	reserved, err := client.Reserve(context.Background(), items)

	// Assert
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, []string{"p1", "p2"}, requested)
}

func TestInventoryClient_Reserve_TransportError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewInventoryClient(server.URL, testTimeout)

	// Act
	reserved, err := client.Reserve(context.Background(), []LineItem{{ProductID: "p1", Quantity: 1}})

	// Assert
	assert.False(t, reserved)
	require.Error(t, err)
	assert.Equal(t, FailureUpstreamUnavailable, kindOf(err))
}

func TestInventoryClient_ReleaseSwallowsFailures(t *testing.T) {
	// Arrange: release é best-effort, nunca propaga falha
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, testTimeout)

	// Act / Assert: não retorna nada nem entra em pânico
	client.Release(context.Background(), []LineItem{{ProductID: "p1", Quantity: 1}})
}

func TestPaymentClient_Charge(t *testing.T) {
	// Arrange
	paymentJSON, _ := json.Marshal(map[string]string{"id": "txn-1", "status": "COMPLETED"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order-1", body["orderId"])
		assert.Equal(t, "user-123", body["userId"])
		assert.Equal(t, "USD", body["currency"])
		assert.Equal(t, 199.97, body["amount"])

		writeEnvelope(w, http.StatusOK, ApiResponse{Success: true, Data: paymentJSON})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, testTimeout)

	// Act
	transactionID, err := client.Charge(context.Background(), "order-1", "user-123", 199.97, "CARD")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "txn-1", transactionID)
}

func TestPaymentClient_Charge_Declined(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusPaymentRequired, ApiResponse{Success: false, Message: "Card declined"})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, testTimeout)

	// Act
	_, err := client.Charge(context.Background(), "order-1", "user-123", 199.97, "CARD")

	// Assert: recusa com motivo legível vira BusinessRejection
	require.Error(t, err)
	assert.Equal(t, FailureBusinessRejection, kindOf(err))
	assert.Equal(t, "Card declined", reasonOf(err))
}

func TestPaymentClient_Charge_ServerErrorWithMessageIsUpstream(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadGateway, ApiResponse{
			Success: false,
			Message: "failed to record transaction: connection refused",
		})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, testTimeout)

	// Act
	_, err := client.Charge(context.Background(), "order-1", "user-123", 199.97, "CARD")

	// Assert: mensagem de erro técnico do serviço não é recusa de
	// negócio; só o 402 do contrato de recusa é
	require.Error(t, err)
	assert.Equal(t, FailureUpstreamUnavailable, kindOf(err))
}

func TestPaymentClient_RefundSwallowsFailures(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/internal/txn-1/refund", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, testTimeout)

	// Act / Assert: não propaga a falha
	client.Refund(context.Background(), "txn-1")
}
