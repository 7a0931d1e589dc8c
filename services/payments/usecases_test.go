package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository simula o TransactionRepository para testes sem banco real
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetTransactionsByOrder(ctx context.Context, orderID string) ([]*Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn *Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockGateway simula o adquirente
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Capture(amount float64, currency, paymentMethod string) (string, error) {
	args := m.Called(amount, currency, paymentMethod)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Refund(gatewayRef string, amount float64) (string, error) {
	args := m.Called(gatewayRef, amount)
	return args.String(0), args.Error(1)
}

func chargeRequest() ChargeRequest {
	return ChargeRequest{
		OrderID:       "order-1",
		UserID:        "user-123",
		Amount:        199.97,
		Currency:      "USD",
		PaymentMethod: "credit_card",
	}
}

func TestCharge_Success(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn *Transaction) bool {
		return txn.Status == TransactionStatusPending && txn.OrderID == "order-1"
	})).Return(nil)
	gateway.On("Capture", 199.97, "USD", "credit_card").Return("MOCK_ref-1", nil)
	repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn *Transaction) bool {
		return txn.Status == TransactionStatusCompleted && txn.GatewayRef == "MOCK_ref-1"
	})).Return(nil)

	txn, err := uc.Charge(context.Background(), chargeRequest())

	require.NoError(t, err)
	assert.Equal(t, TransactionStatusCompleted, txn.Status)
	assert.Equal(t, "MOCK_ref-1", txn.GatewayRef)
	assert.NotEmpty(t, txn.ID)
	repo.AssertExpectations(t)
}

func TestCharge_DefaultsCurrencyToUSD(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	req := chargeRequest()
	req.Currency = ""

	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	gateway.On("Capture", 199.97, "USD", "credit_card").Return("MOCK_ref-1", nil)
	repo.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil)

	txn, err := uc.Charge(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "USD", txn.Currency)
	gateway.AssertExpectations(t)
}

func TestCharge_DeclineIsRecordedAndPropagated(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	gateway.On("Capture", 199.97, "USD", "credit_card").
		Return("", &DeclineError{Reason: "Insufficient funds"})
	repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn *Transaction) bool {
		return txn.Status == TransactionStatusFailed && txn.FailureReason == "Insufficient funds"
	})).Return(nil)

	txn, err := uc.Charge(context.Background(), chargeRequest())

	var decline *DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "Insufficient funds", decline.Reason)
	assert.Equal(t, TransactionStatusFailed, txn.Status)
	repo.AssertExpectations(t)
}

func TestCharge_PersistFailureAborts(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := uc.Charge(context.Background(), chargeRequest())

	require.Error(t, err)
	gateway.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefund_Success(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	txn := NewTransaction("txn-1", "order-1", "user-123", 199.97, "USD", "credit_card")
	txn.Complete("MOCK_ref-1")

	repo.On("GetTransaction", mock.Anything, "txn-1").Return(txn, nil)
	gateway.On("Refund", "MOCK_ref-1", 199.97).Return("REFUND_ref-2", nil)
	repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(updated *Transaction) bool {
		return updated.Status == TransactionStatusRefunded && updated.GatewayRef == "REFUND_ref-2"
	})).Return(nil)

	refunded, err := uc.Refund(context.Background(), "txn-1")

	require.NoError(t, err)
	assert.Equal(t, TransactionStatusRefunded, refunded.Status)
	repo.AssertExpectations(t)
}

func TestRefund_OnlyCompletedTransactions(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	txn := NewTransaction("txn-1", "order-1", "user-123", 199.97, "USD", "credit_card")
	txn.Fail("Card declined")

	repo.On("GetTransaction", mock.Anything, "txn-1").Return(txn, nil)

	_, err := uc.Refund(context.Background(), "txn-1")

	require.ErrorIs(t, err, ErrNotRefundable)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateTransaction", mock.Anything, mock.Anything)
}

func TestRefund_TransactionNotFound(t *testing.T) {
	repo := new(MockTransactionRepository)
	gateway := new(MockGateway)
	uc := NewPaymentUseCase(repo, gateway)

	repo.On("GetTransaction", mock.Anything, "missing").Return(nil, ErrTransactionNotFound)

	_, err := uc.Refund(context.Background(), "missing")

	require.ErrorIs(t, err, ErrTransactionNotFound)
}
