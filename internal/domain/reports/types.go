// Package reports renders record sets as downloadable CSV or JSON exports.
package reports

import (
	"time"

	"adminsuite/internal/domain/export"
	"adminsuite/internal/domain/table"
)

// Type is the record set an export reads.
type Type string

const (
	TypeUsers     Type = "users"
	TypeSales     Type = "sales"
	TypeCustomers Type = "customers"
	TypeInventory Type = "inventory"
)

// ParseType validates s.
func ParseType(s string) (Type, bool) {
	switch t := Type(s); t {
	case TypeUsers, TypeSales, TypeCustomers, TypeInventory:
		return t, true
	default:
		return "", false
	}
}

// Format is the payload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates s. Empty input is CSV.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case "":
		return FormatCSV, true
	case FormatCSV, FormatJSON:
		return f, true
	default:
		return "", false
	}
}

// ExportRequest selects, orders and projects records for one export.
type ExportRequest struct {
	Type           Type
	Format         Format
	Fields         []string
	IncludeHeaders bool
	Filename       string

	// StartDate and EndDate bound the record date (createdAt for users,
	// date for metrics). Inventory ignores them.
	StartDate *time.Time
	EndDate   *time.Time

	Filter table.FilterSpec
	Sort   table.SortSpec
}

// ExportResult is a rendered export ready to be sent or written.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Count       int
}

// Summary is the reports landing block.
type Summary struct {
	TotalUsers     int       `json:"totalUsers"`
	ActiveUsers    int       `json:"activeUsers"`
	InactiveUsers  int       `json:"inactiveUsers"`
	InventoryItems int       `json:"inventoryItems"`
	LowStockItems  int       `json:"lowStockItems"`
	SalesRecords   int       `json:"salesRecords"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Preview is an export estimate.
type Preview = export.Summary
