package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository define a interface para operações de banco de
// dados de inventário
type InventoryRepository interface {
	GetProductInventory(ctx context.Context, productID string) (*ProductInventory, error)
	GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductInventory, error)
	SaveInventory(ctx context.Context, tx Tx, inventory *ProductInventory) error
	RecordMovement(ctx context.Context, tx Tx, movement *InventoryMovement) error
	UpsertInventory(ctx context.Context, inventory *ProductInventory) error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

// PostgresInventoryRepository implementa InventoryRepository usando PostgreSQL
type PostgresInventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository cria uma nova instância de PostgresInventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) InventoryRepository {
	return &PostgresInventoryRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *PostgresInventoryRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetProductInventory busca o estoque de um produto
func (r *PostgresInventoryRepository) GetProductInventory(ctx context.Context, productID string) (*ProductInventory, error) {
	var inventory ProductInventory
	err := r.db.QueryRow(ctx, `
		SELECT product_id, quantity, reserved_quantity, low_stock_threshold, created_at, updated_at
		FROM product_inventory
		WHERE product_id = $1
	`, productID).Scan(&inventory.ProductID, &inventory.Quantity, &inventory.ReservedQuantity,
		&inventory.LowStockThreshold, &inventory.CreatedAt, &inventory.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &inventory, nil
}

// GetProductForUpdate obtém o estoque com lock pessimista (FOR UPDATE)
func (r *PostgresInventoryRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductInventory, error) {
	pgTx := tx.(*PostgresTx).tx

	var inventory ProductInventory
	err := pgTx.QueryRow(ctx, `
		SELECT product_id, quantity, reserved_quantity, low_stock_threshold, created_at, updated_at
		FROM product_inventory
		WHERE product_id = $1
		FOR UPDATE
	`, productID).Scan(&inventory.ProductID, &inventory.Quantity, &inventory.ReservedQuantity,
		&inventory.LowStockThreshold, &inventory.CreatedAt, &inventory.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product with lock: %w", err)
	}

	return &inventory, nil
}

// SaveInventory persiste as quantidades do produto dentro da transação dada
func (r *PostgresInventoryRepository) SaveInventory(ctx context.Context, tx Tx, inventory *ProductInventory) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		UPDATE product_inventory
		SET quantity = $1, reserved_quantity = $2, updated_at = NOW()
		WHERE product_id = $3
	`, inventory.Quantity, inventory.ReservedQuantity, inventory.ProductID)
	return err
}

// RecordMovement registra a movimentação dentro da transação dada
func (r *PostgresInventoryRepository) RecordMovement(ctx context.Context, tx Tx, movement *InventoryMovement) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO inventory_movements (id, product_id, quantity, movement_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, movement.ID, movement.ProductID, movement.Quantity, movement.MovementType, movement.CreatedAt)
	return err
}

// UpsertInventory cria ou sobrescreve o estoque de um produto
func (r *PostgresInventoryRepository) UpsertInventory(ctx context.Context, inventory *ProductInventory) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_inventory (product_id, quantity, reserved_quantity, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = $2, low_stock_threshold = $4, updated_at = $6
	`, inventory.ProductID, inventory.Quantity, inventory.ReservedQuantity,
		inventory.LowStockThreshold, inventory.CreatedAt, inventory.UpdatedAt)
	return err
}
