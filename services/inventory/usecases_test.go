package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInventoryRepository simula o InventoryRepository para testes sem banco real
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetProductInventory(ctx context.Context, productID string) (*ProductInventory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductInventory), args.Error(1)
}

func (m *MockInventoryRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductInventory, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductInventory), args.Error(1)
}

func (m *MockInventoryRepository) SaveInventory(ctx context.Context, tx Tx, inventory *ProductInventory) error {
	args := m.Called(ctx, tx, inventory)
	return args.Error(0)
}

func (m *MockInventoryRepository) RecordMovement(ctx context.Context, tx Tx, movement *InventoryMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpsertInventory(ctx context.Context, inventory *ProductInventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func (m *MockInventoryRepository) BeginTx(ctx context.Context) (Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Tx), args.Error(1)
}

// MockTx simula uma transação
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func TestReserveStock_Success(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 2, LowStockThreshold: 1}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "p1").Return(inv, nil)
	repo.On("SaveInventory", mock.Anything, tx, inv).Return(nil)
	repo.On("RecordMovement", mock.Anything, tx, mock.MatchedBy(func(mv *InventoryMovement) bool {
		return mv.ProductID == "p1" && mv.Quantity == 3 && mv.MovementType == MovementTypeReserved
	})).Return(nil)
	tx.On("Commit").Return(nil)
	tx.On("Rollback").Return(nil)

	err := uc.ReserveStock(context.Background(), "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, 5, inv.ReservedQuantity)
	assert.Equal(t, 5, inv.Available())
	repo.AssertExpectations(t)
	tx.AssertCalled(t, "Commit")
}

func TestReserveStock_InsufficientStock(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	inv := &ProductInventory{ProductID: "p1", Quantity: 5, ReservedQuantity: 4}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "p1").Return(inv, nil)
	tx.On("Rollback").Return(nil)

	err := uc.ReserveStock(context.Background(), "p1", 2)

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 4, inv.ReservedQuantity)
	repo.AssertNotCalled(t, "SaveInventory", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit")
	tx.AssertCalled(t, "Rollback")
}

func TestReserveStock_ProductNotFound(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "missing").Return(nil, ErrProductNotFound)
	tx.On("Rollback").Return(nil)

	err := uc.ReserveStock(context.Background(), "missing", 1)

	require.ErrorIs(t, err, ErrProductNotFound)
	tx.AssertNotCalled(t, "Commit")
}

func TestReserveStock_RejectsNonPositiveQuantity(t *testing.T) {
	repo := new(MockInventoryRepository)
	uc := NewInventoryUseCase(repo)

	err := uc.ReserveStock(context.Background(), "p1", 0)

	require.Error(t, err)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestReleaseStock_FloorsAtZero(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 1, LowStockThreshold: 1}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "p1").Return(inv, nil)
	repo.On("SaveInventory", mock.Anything, tx, inv).Return(nil)
	repo.On("RecordMovement", mock.Anything, tx, mock.MatchedBy(func(mv *InventoryMovement) bool {
		return mv.MovementType == MovementTypeReleased
	})).Return(nil)
	tx.On("Commit").Return(nil)
	tx.On("Rollback").Return(nil)

	err := uc.ReleaseStock(context.Background(), "p1", 5)

	require.NoError(t, err)
	assert.Equal(t, 0, inv.ReservedQuantity)
	assert.Equal(t, 10, inv.Quantity)
}

func TestConfirmStock_ConsumesReservation(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 3, LowStockThreshold: 1}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "p1").Return(inv, nil)
	repo.On("SaveInventory", mock.Anything, tx, inv).Return(nil)
	repo.On("RecordMovement", mock.Anything, tx, mock.MatchedBy(func(mv *InventoryMovement) bool {
		return mv.MovementType == MovementTypeConfirmed && mv.Quantity == 3
	})).Return(nil)
	tx.On("Commit").Return(nil)
	tx.On("Rollback").Return(nil)

	err := uc.ConfirmStock(context.Background(), "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, 0, inv.ReservedQuantity)
	assert.Equal(t, 7, inv.Quantity)
}

func TestConfirmStock_SaveFailureRollsBack(t *testing.T) {
	repo := new(MockInventoryRepository)
	tx := new(MockTx)
	uc := NewInventoryUseCase(repo)

	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 3}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	repo.On("GetProductForUpdate", mock.Anything, tx, "p1").Return(inv, nil)
	repo.On("SaveInventory", mock.Anything, tx, inv).Return(errors.New("connection reset"))
	tx.On("Rollback").Return(nil)

	err := uc.ConfirmStock(context.Background(), "p1", 3)

	require.Error(t, err)
	repo.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit")
	tx.AssertCalled(t, "Rollback")
}

func TestSetStock_CreatesWhenMissing(t *testing.T) {
	repo := new(MockInventoryRepository)
	uc := NewInventoryUseCase(repo)

	repo.On("GetProductInventory", mock.Anything, "p-new").Return(nil, ErrProductNotFound)
	repo.On("UpsertInventory", mock.Anything, mock.MatchedBy(func(inv *ProductInventory) bool {
		return inv.ProductID == "p-new" && inv.Quantity == 100 && inv.LowStockThreshold == 5
	})).Return(nil)

	inv, err := uc.SetStock(context.Background(), "p-new", 100, 5)

	require.NoError(t, err)
	assert.Equal(t, 100, inv.Quantity)
	assert.Equal(t, 0, inv.ReservedQuantity)
	repo.AssertExpectations(t)
}

func TestSetStock_UpdatesExistingKeepingReservation(t *testing.T) {
	repo := new(MockInventoryRepository)
	uc := NewInventoryUseCase(repo)

	existing := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 4, LowStockThreshold: 10}

	repo.On("GetProductInventory", mock.Anything, "p1").Return(existing, nil)
	repo.On("UpsertInventory", mock.Anything, existing).Return(nil)

	inv, err := uc.SetStock(context.Background(), "p1", 50, 0)

	require.NoError(t, err)
	assert.Equal(t, 50, inv.Quantity)
	assert.Equal(t, 4, inv.ReservedQuantity)
	assert.Equal(t, 10, inv.LowStockThreshold)
}
