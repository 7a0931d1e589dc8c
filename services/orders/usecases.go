package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// OrderUseCase contém a lógica de negócio de carrinhos e pedidos
type OrderUseCase struct {
	repository Repository
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(repository Repository) *OrderUseCase {
	return &OrderUseCase{
		repository: repository,
	}
}

// GetCart busca o carrinho do usuário, criando um vazio no primeiro acesso
func (uc *OrderUseCase) GetCart(ctx context.Context, userID string) (*Cart, error) {
	cart, err := uc.repository.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			cart = NewCart(uuid.New().String(), userID)
			if err := uc.repository.SaveCart(ctx, cart); err != nil {
				return nil, fmt.Errorf("failed to create cart: %w", err)
			}
			return cart, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddToCartRequest representa a requisição para adicionar um item ao carrinho
type AddToCartRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

// AddToCart adiciona um item ao carrinho do usuário
func (uc *OrderUseCase) AddToCart(ctx context.Context, userID string, req AddToCartRequest) (*Cart, error) {
	cart, err := uc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})

	if err := uc.repository.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	log.Printf("✅ Item %s added to cart for user %s", req.ProductID, userID)
	return cart, nil
}

// UpdateCartItem ajusta a quantidade de um item no carrinho
func (uc *OrderUseCase) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	cart, err := uc.repository.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateItemQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := uc.repository.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveFromCart remove um item do carrinho
func (uc *OrderUseCase) RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error) {
	cart, err := uc.repository.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := uc.repository.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// CreateOrderFromCart cria um pedido PENDING a partir do carrinho e
// limpa o carrinho na mesma transação
func (uc *OrderUseCase) CreateOrderFromCart(ctx context.Context, userID string, address ShippingAddress) (*Order, error) {
	log.Printf("➡️ [CREATE ORDER] UserID: %s", userID)

	cart, err := uc.repository.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	order := NewOrderFromCart(uuid.New().String(), cart, address)

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := uc.repository.CreateOrder(ctx, tx, order); err != nil {
		log.Printf("❌ Failed to create order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := uc.repository.ClearCart(ctx, tx, cart.ID); err != nil {
		log.Printf("❌ Failed to clear cart: %v", err)
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ Order created: %s | Total: %.2f", order.ID, order.TotalAmount)
	return order, nil
}

// UpdateOrderStatus aplica uma transição de status ao pedido
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status string) (*Order, error) {
	log.Printf("➡️ [UPDATE STATUS] OrderID: %s | Status: %s", orderID, status)

	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch status {
	case OrderStatusConfirmed:
		err = order.Confirm()
	case OrderStatusCancelled:
		err = order.Cancel()
	default:
		return nil, ErrInvalidStatus
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repository.UpdateOrderStatus(ctx, orderID, order.Status); err != nil {
		log.Printf("❌ Failed to update order status: %v", err)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	log.Printf("✅ Order %s status updated to %s", orderID, order.Status)
	return order, nil
}

// GetUserOrders busca os pedidos do usuário
func (uc *OrderUseCase) GetUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return uc.repository.ListOrdersByUser(ctx, userID)
}

// GetOrder busca um pedido verificando que pertence ao usuário
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID, userID string) (*Order, error) {
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	return order, nil
}
