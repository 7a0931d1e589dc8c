package main

import (
	"testing"
)

func TestProductInventory_Available(t *testing.T) {
	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 3}

	if got := inv.Available(); got != 7 {
		t.Errorf("expected available 7, got %d", got)
	}
}

func TestProductInventory_Reserve(t *testing.T) {
	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 8}

	if err := inv.Reserve(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ReservedQuantity != 10 {
		t.Errorf("expected reserved 10, got %d", inv.ReservedQuantity)
	}

	if err := inv.Reserve(1); err != ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if inv.ReservedQuantity != 10 {
		t.Errorf("failed reserve must not change reserved quantity, got %d", inv.ReservedQuantity)
	}
}

func TestProductInventory_ReleaseFloorsAtZero(t *testing.T) {
	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 2}

	inv.Release(5)

	if inv.ReservedQuantity != 0 {
		t.Errorf("expected reserved 0, got %d", inv.ReservedQuantity)
	}
	if inv.Quantity != 10 {
		t.Errorf("release must not change physical quantity, got %d", inv.Quantity)
	}
}

func TestProductInventory_Confirm(t *testing.T) {
	inv := &ProductInventory{ProductID: "p1", Quantity: 10, ReservedQuantity: 3}

	inv.Confirm(3)

	if inv.ReservedQuantity != 0 {
		t.Errorf("expected reserved 0, got %d", inv.ReservedQuantity)
	}
	if inv.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", inv.Quantity)
	}
}

func TestProductInventory_ConfirmFloorsAtZero(t *testing.T) {
	inv := &ProductInventory{ProductID: "p1", Quantity: 2, ReservedQuantity: 1}

	inv.Confirm(5)

	if inv.ReservedQuantity != 0 {
		t.Errorf("expected reserved 0, got %d", inv.ReservedQuantity)
	}
	if inv.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", inv.Quantity)
	}
}

func TestProductInventory_IsLowStock(t *testing.T) {
	inv := NewProductInventory("p1", 50)

	if inv.IsLowStock() {
		t.Error("50 units should not be low stock with default threshold")
	}

	inv.Quantity = 10
	if !inv.IsLowStock() {
		t.Error("quantity at threshold should be low stock")
	}
}
