package dto

import (
	"time"

	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/inventory"
)

// ItemResponse is an inventory row with its derived columns.
type ItemResponse struct {
	ID           string      `json:"id"`
	SKU          string      `json:"sku"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Stock        int         `json:"stock"`
	Reserved     int         `json:"reserved"`
	Available    int         `json:"available"`
	Price        types.Money `json:"price"`
	Cost         types.Money `json:"cost"`
	StockValue   types.Money `json:"stockValue"`
	Supplier     *string     `json:"supplier,omitempty"`
	ReorderLevel int         `json:"reorderLevel"`
	StockStatus  string      `json:"stockStatus"`
	LastUpdated  time.Time   `json:"lastUpdated"`
}

// FromItem converts an inventory item.
func FromItem(it inventory.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID.String(),
		SKU:          it.SKU,
		Name:         it.Name,
		Category:     it.Category,
		Stock:        it.Stock,
		Reserved:     it.Reserved,
		Available:    it.Available(),
		Price:        it.Price,
		Cost:         it.Cost,
		StockValue:   it.StockValue(),
		Supplier:     it.Supplier,
		ReorderLevel: it.ReorderLevel,
		StockStatus:  it.Status(),
		LastUpdated:  it.LastUpdated,
	}
}
