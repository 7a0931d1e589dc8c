package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// InventoryUseCase contém a lógica de negócio do serviço de inventário
type InventoryUseCase struct {
	repo InventoryRepository
}

// NewInventoryUseCase cria uma nova instância de InventoryUseCase
func NewInventoryUseCase(repo InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{
		repo: repo,
	}
}

// GetInventory retorna o estoque atual de um produto
func (uc *InventoryUseCase) GetInventory(ctx context.Context, productID string) (*ProductInventory, error) {
	return uc.repo.GetProductInventory(ctx, productID)
}

// SetStock define a quantidade disponível e o limite de estoque baixo de um produto
func (uc *InventoryUseCase) SetStock(ctx context.Context, productID string, quantity int, lowStockThreshold int) (*ProductInventory, error) {
	inventory, err := uc.repo.GetProductInventory(ctx, productID)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		inventory = NewProductInventory(productID, quantity)
	}
	inventory.Quantity = quantity
	if lowStockThreshold > 0 {
		inventory.LowStockThreshold = lowStockThreshold
	}

	if err := uc.repo.UpsertInventory(ctx, inventory); err != nil {
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}
	return inventory, nil
}

// ReserveStock reserva estoque com lock pessimista
func (uc *InventoryUseCase) ReserveStock(ctx context.Context, productID string, quantity int) error {
	return uc.applyMovement(ctx, productID, quantity, MovementTypeReserved)
}

// ReleaseStock devolve uma reserva ao estoque disponível
func (uc *InventoryUseCase) ReleaseStock(ctx context.Context, productID string, quantity int) error {
	return uc.applyMovement(ctx, productID, quantity, MovementTypeReleased)
}

// ConfirmStock baixa definitivamente o estoque reservado
func (uc *InventoryUseCase) ConfirmStock(ctx context.Context, productID string, quantity int) error {
	return uc.applyMovement(ctx, productID, quantity, MovementTypeConfirmed)
}

func (uc *InventoryUseCase) applyMovement(ctx context.Context, productID string, quantity int, movementType string) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inventory, err := uc.repo.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		return err
	}

	switch movementType {
	case MovementTypeReserved:
		if err := inventory.Reserve(quantity); err != nil {
			log.Printf("❌ Insufficient stock | Product: %s | Available: %d | Requested: %d",
				productID, inventory.Available(), quantity)
			return err
		}
	case MovementTypeReleased:
		inventory.Release(quantity)
	case MovementTypeConfirmed:
		inventory.Confirm(quantity)
	default:
		return fmt.Errorf("unknown movement type: %s", movementType)
	}

	if err := uc.repo.SaveInventory(ctx, tx, inventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	movement := NewInventoryMovement(uuid.New().String(), productID, quantity, movementType)
	if err := uc.repo.RecordMovement(ctx, tx, movement); err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if inventory.IsLowStock() {
		log.Printf("ℹ️ Low stock | Product: %s | Available: %d | Threshold: %d",
			productID, inventory.Available(), inventory.LowStockThreshold)
	}

	log.Printf("✅ Stock movement | Product: %s | Type: %s | Quantity: %d",
		productID, movementType, quantity)
	return nil
}
