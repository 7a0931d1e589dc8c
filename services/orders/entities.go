package main

import (
	"errors"
	"math"
	"time"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrItemNotInCart     = errors.New("item not found in cart")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("only pending orders can change status")
	ErrUnauthorized      = errors.New("unauthorized access to order")
)

// OrderStatus representa os possíveis status de um pedido
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
)

// CartItem representa um item no carrinho do usuário
type CartItem struct {
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// Cart representa o carrinho de compras de um usuário
type Cart struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"userId" db:"user_id"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice" db:"total_price"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// NewCart cria um carrinho vazio para o usuário
func NewCart(id, userID string) *Cart {
	return &Cart{
		ID:        id,
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// AddItem adiciona um item ao carrinho, somando a quantidade se o
// produto já existe
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.RecalculateTotal()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.RecalculateTotal()
}

// UpdateItemQuantity ajusta a quantidade de um item existente
func (c *Cart) UpdateItemQuantity(productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.RecalculateTotal()
			return nil
		}
	}
	return ErrItemNotInCart
}

// RemoveItem remove um item do carrinho
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.RecalculateTotal()
			return nil
		}
	}
	return ErrItemNotInCart
}

// Clear esvazia o carrinho após a criação do pedido
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalPrice = 0
}

// RecalculateTotal recalcula o total do carrinho a partir dos itens
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	// Arredonda para centavos
	c.TotalPrice = math.Round(total*100) / 100
	c.UpdatedAt = time.Now()
}

// OrderItem representa um item copiado do carrinho para o pedido
type OrderItem struct {
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// ShippingAddress representa o endereço de entrega do pedido
type ShippingAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// Order representa um pedido no sistema
type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"userId" db:"user_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewOrderFromCart cria um pedido PENDING copiando os itens do carrinho
func NewOrderFromCart(id string, cart *Cart, address ShippingAddress) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &Order{
		ID:              id,
		UserID:          cart.UserID,
		Items:           items,
		TotalAmount:     cart.TotalPrice,
		Status:          OrderStatusPending,
		ShippingAddress: address,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// Confirm marca o pedido como confirmado
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return ErrInvalidTransition
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// Cancel marca o pedido como cancelado
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return ErrInvalidTransition
	}
	o.Status = OrderStatusCancelled
	return nil
}
