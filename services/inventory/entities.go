package main

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound   = errors.New("inventory not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductInventory representa o estoque de um produto. Available é o
// que pode ser vendido: quantidade física menos o que já está
// reservado por checkouts em andamento.
type ProductInventory struct {
	ProductID         string    `json:"productId" db:"product_id"`
	Quantity          int       `json:"quantity" db:"quantity"`
	ReservedQuantity  int       `json:"reservedQuantity" db:"reserved_quantity"`
	LowStockThreshold int       `json:"lowStockThreshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// NewProductInventory cria uma nova instância de ProductInventory
func NewProductInventory(productID string, quantity int) *ProductInventory {
	return &ProductInventory{
		ProductID:         productID,
		Quantity:          quantity,
		LowStockThreshold: 10,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

// Available retorna a quantidade disponível para reserva
func (p *ProductInventory) Available() int {
	return p.Quantity - p.ReservedQuantity
}

// Reserve segura a quantidade pedida, falhando se não há disponível
func (p *ProductInventory) Reserve(quantity int) error {
	if p.Available() < quantity {
		return ErrInsufficientStock
	}
	p.ReservedQuantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// Release devolve uma reserva, nunca abaixo de zero
func (p *ProductInventory) Release(quantity int) {
	p.ReservedQuantity -= quantity
	if p.ReservedQuantity < 0 {
		p.ReservedQuantity = 0
	}
	p.UpdatedAt = time.Now()
}

// Confirm consome uma reserva: baixa a reserva e o estoque físico,
// nunca abaixo de zero
func (p *ProductInventory) Confirm(quantity int) {
	p.ReservedQuantity -= quantity
	if p.ReservedQuantity < 0 {
		p.ReservedQuantity = 0
	}
	p.Quantity -= quantity
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.UpdatedAt = time.Now()
}

// IsLowStock indica se o estoque físico atingiu o limite de alerta
func (p *ProductInventory) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// InventoryMovement registra uma movimentação de estoque para auditoria
type InventoryMovement struct {
	ID           string    `json:"id" db:"id"`
	ProductID    string    `json:"productId" db:"product_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	MovementType string    `json:"movementType" db:"movement_type"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NewInventoryMovement cria uma nova instância de InventoryMovement
func NewInventoryMovement(id, productID string, quantity int, movementType string) *InventoryMovement {
	return &InventoryMovement{
		ID:           id,
		ProductID:    productID,
		Quantity:     quantity,
		MovementType: movementType,
		CreatedAt:    time.Now(),
	}
}

// MovementType representa os tipos de movimentação de estoque
const (
	MovementTypeReserved  = "reserved"
	MovementTypeReleased  = "released"
	MovementTypeConfirmed = "confirmed"
)
