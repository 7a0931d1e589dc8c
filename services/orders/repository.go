package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados de
// carrinhos e pedidos
type Repository interface {
	GetCartByUserID(ctx context.Context, userID string) (*Cart, error)
	SaveCart(ctx context.Context, cart *Cart) error

	// CreateOrder e ClearCart executam dentro da mesma transação: o
	// carrinho só é limpo por um pedido efetivamente criado a partir dele
	CreateOrder(ctx context.Context, tx Tx, order *Order) error
	ClearCart(ctx context.Context, tx Tx, cartID string) error

	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
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

// OrderRepository implementa Repository usando PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) Repository {
	return &OrderRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *OrderRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetCartByUserID busca o carrinho do usuário com seus itens
func (r *OrderRepository) GetCartByUserID(ctx context.Context, userID string) (*Cart, error) {
	var cart Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, total_price, created_at, updated_at
		FROM carts WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT product_id, name, price, quantity
		FROM cart_items WHERE cart_id = $1
		ORDER BY product_id
	`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []CartItem{}
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart, rows.Err()
}

// SaveCart persiste o carrinho e substitui seus itens atomicamente
func (r *OrderRepository) SaveCart(ctx context.Context, cart *Cart) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO carts (id, user_id, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET total_price = $3, updated_at = $5
	`, cart.ID, cart.UserID, cart.TotalPrice, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return err
	}

	for _, item := range cart.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, cart.ID, item.ProductID, item.Name, item.Price, item.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CreateOrder insere o pedido e seus itens dentro da transação dada
func (r *OrderRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_amount, status, street, city, zip, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, order.ID, order.UserID, order.TotalAmount, order.Status,
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.Zip, order.ShippingAddress.Country,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		_, err = pgTx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.ProductID, item.Name, item.Price, item.Quantity)
		if err != nil {
			return err
		}
	}

	return nil
}

// ClearCart remove os itens e zera o total do carrinho dentro da transação dada
func (r *OrderRepository) ClearCart(ctx context.Context, tx Tx, cartID string) error {
	pgTx := tx.(*PostgresTx).tx

	if _, err := pgTx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	_, err := pgTx.Exec(ctx, `
		UPDATE carts SET total_price = 0, updated_at = NOW() WHERE id = $1
	`, cartID)
	return err
}

// GetOrder busca um pedido pelo ID com seus itens
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, total_amount, status, street, city, zip, country, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.ShippingAddress.Street, &order.ShippingAddress.City,
		&order.ShippingAddress.Zip, &order.ShippingAddress.Country,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT product_id, name, price, quantity
		FROM order_items WHERE order_id = $1
		ORDER BY product_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Items = []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

// ListOrdersByUser busca os pedidos do usuário, mais recentes primeiro
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, total_amount, status, street, city, zip, country, created_at, updated_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var order Order
		err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
			&order.ShippingAddress.Street, &order.ShippingAddress.City,
			&order.ShippingAddress.Zip, &order.ShippingAddress.Country,
			&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus atualiza o status de um pedido. O predicado só
// aceita pedidos PENDING, a mesma transição que Confirm/Cancel impõem
// em memória: uma atualização concorrente perde a corrida no banco em
// vez de sobrescrever um estado terminal.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, status, orderID, OrderStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}
