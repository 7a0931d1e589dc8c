package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TransactionRepository define a interface para persistência de transações
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, txn *Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	GetTransactionsByOrder(ctx context.Context, orderID string) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, txn *Transaction) error
}

// PostgresTransactionRepository implementa TransactionRepository usando
// database/sql com o driver pq
type PostgresTransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository cria uma nova instância de PostgresTransactionRepository
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &PostgresTransactionRepository{
		db: db,
	}
}

// CreateTransaction insere a transação em estado PENDING
func (r *PostgresTransactionRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_transactions
			(id, order_id, user_id, amount, currency, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, txn.ID, txn.OrderID, txn.UserID, txn.Amount, txn.Currency,
		txn.PaymentMethod, txn.Status, txn.CreatedAt, txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransaction busca uma transação pelo id
func (r *PostgresTransactionRepository) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, amount, currency, payment_method, status,
			COALESCE(gateway_ref, ''), COALESCE(failure_reason, ''), created_at, updated_at
		FROM payment_transactions
		WHERE id = $1
	`, transactionID)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

// GetTransactionsByOrder lista as transações de um pedido, mais recentes primeiro
func (r *PostgresTransactionRepository) GetTransactionsByOrder(ctx context.Context, orderID string) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, user_id, amount, currency, payment_method, status,
			COALESCE(gateway_ref, ''), COALESCE(failure_reason, ''), created_at, updated_at
		FROM payment_transactions
		WHERE order_id = $1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// UpdateTransaction persiste status, referência do gateway e motivo de falha
func (r *PostgresTransactionRepository) UpdateTransaction(ctx context.Context, txn *Transaction) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, gateway_ref = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5
	`, txn.Status, txn.GatewayRef, txn.FailureReason, txn.UpdatedAt, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	var txn Transaction
	err := row.Scan(&txn.ID, &txn.OrderID, &txn.UserID, &txn.Amount, &txn.Currency,
		&txn.PaymentMethod, &txn.Status, &txn.GatewayRef, &txn.FailureReason,
		&txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
