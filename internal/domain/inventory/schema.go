package inventory

import "adminsuite/internal/core/record"

var (
	FieldCategory    = record.Field[Item]{Key: "category", Kind: record.KindString, Get: func(i Item) record.Value { return record.String(i.Category) }}
	FieldStock       = record.Field[Item]{Key: "stock", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Int(i.Stock) }}
	FieldStockStatus = record.Field[Item]{Key: "stockStatus", Kind: record.KindString, Get: func(i Item) record.Value { return record.String(i.Status()) }}
	FieldStockValue  = record.Field[Item]{Key: "stockValue", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Money(i.StockValue()) }}
)

// Schema is the inventory field set, derived columns included.
var Schema = record.NewSchema(
	record.Field[Item]{Key: "id", Kind: record.KindString, Get: func(i Item) record.Value { return record.String(i.ID.String()) }},
	record.Field[Item]{Key: "sku", Kind: record.KindString, Get: func(i Item) record.Value { return record.String(i.SKU) }},
	record.Field[Item]{Key: "name", Kind: record.KindString, Get: func(i Item) record.Value { return record.String(i.Name) }},
	FieldCategory,
	FieldStock,
	record.Field[Item]{Key: "reserved", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Int(i.Reserved) }},
	record.Field[Item]{Key: "available", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Int(i.Available()) }},
	record.Field[Item]{Key: "price", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Money(i.Price) }},
	record.Field[Item]{Key: "cost", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Money(i.Cost) }},
	FieldStockValue,
	record.Field[Item]{Key: "supplier", Kind: record.KindString, Get: func(i Item) record.Value { return record.StringPtr(i.Supplier) }},
	record.Field[Item]{Key: "reorderLevel", Kind: record.KindNumber, Get: func(i Item) record.Value { return record.Int(i.ReorderLevel) }},
	FieldStockStatus,
	record.Field[Item]{Key: "lastUpdated", Kind: record.KindTime, Get: func(i Item) record.Value { return record.Time(i.LastUpdated) }},
	record.Field[Item]{Key: "createdAt", Kind: record.KindTime, Get: func(i Item) record.Value { return record.Time(i.CreatedAt) }},
).
	WithSearchable("sku", "name", "category", "supplier").
	WithDefaultExport("sku", "name", "category", "stock", "reserved", "available", "price", "cost", "supplier", "stockStatus", "lastUpdated")
