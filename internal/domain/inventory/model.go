// Package inventory holds stock items and their derived stock status.
package inventory

import (
	"context"
	"time"

	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
)

// Stock statuses.
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
)

// Item is one stock-keeping unit.
type Item struct {
	ID           id.ID       `db:"id" json:"id"`
	SKU          string      `db:"sku" json:"sku"`
	Name         string      `db:"name" json:"name"`
	Category     string      `db:"category" json:"category"`
	Stock        int         `db:"stock" json:"stock"`
	Reserved     int         `db:"reserved" json:"reserved"`
	Price        types.Money `db:"price" json:"price"`
	Cost         types.Money `db:"cost" json:"cost"`
	Supplier     *string     `db:"supplier" json:"supplier,omitempty"`
	ReorderLevel int         `db:"reorder_level" json:"reorderLevel"`
	LastUpdated  time.Time   `db:"last_updated" json:"lastUpdated"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// Available is stock not held by reservations.
func (i Item) Available() int {
	return i.Stock - i.Reserved
}

// Status classifies the stock level against the reorder level.
func (i Item) Status() string {
	switch {
	case i.Stock == 0:
		return StatusOutOfStock
	case i.Stock <= i.ReorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StockValue is price times units on hand.
func (i Item) StockValue() types.Money {
	return types.MulInt(i.Price, i.Stock)
}

// Repository reads inventory items.
type Repository interface {
	// List returns items ordered by SKU. An empty category matches all.
	List(ctx context.Context, category string) ([]Item, error)
}
