package sales

import "adminsuite/internal/core/record"

var (
	FieldDate      = record.Field[Metric]{Key: "date", Kind: record.KindTime, Get: func(m Metric) record.Value { return record.Time(m.Date) }}
	FieldRevenue   = record.Field[Metric]{Key: "revenue", Kind: record.KindNumber, Get: func(m Metric) record.Value { return record.Money(m.Revenue) }}
	FieldOrders    = record.Field[Metric]{Key: "orders", Kind: record.KindNumber, Get: func(m Metric) record.Value { return record.Int(m.Orders) }}
	FieldCustomers = record.Field[Metric]{Key: "customers", Kind: record.KindNumber, Get: func(m Metric) record.Value { return record.Int(m.Customers) }}
	FieldChannel   = record.Field[Metric]{Key: "channel", Kind: record.KindString, Get: func(m Metric) record.Value { return record.String(m.Channel) }}
)

// Schema is the sales metric field set.
var Schema = record.NewSchema(
	record.Field[Metric]{Key: "id", Kind: record.KindString, Get: func(m Metric) record.Value { return record.String(m.ID.String()) }},
	FieldDate,
	FieldRevenue,
	FieldOrders,
	FieldCustomers,
	FieldChannel,
	record.Field[Metric]{Key: "createdAt", Kind: record.KindTime, Get: func(m Metric) record.Value { return record.Time(m.CreatedAt) }},
).
	WithSearchable("channel").
	WithDefaultExport("date", "revenue", "orders", "customers", "channel")

var (
	FieldCustomerDate  = record.Field[CustomerMetric]{Key: "date", Kind: record.KindTime, Get: func(c CustomerMetric) record.Value { return record.Time(c.Date) }}
	FieldTotalCustomer = record.Field[CustomerMetric]{Key: "totalCustomers", Kind: record.KindNumber, Get: func(c CustomerMetric) record.Value { return record.Int(c.TotalCustomers) }}
	FieldNewCustomers  = record.Field[CustomerMetric]{Key: "newCustomers", Kind: record.KindNumber, Get: func(c CustomerMetric) record.Value { return record.Int(c.NewCustomers) }}
)

// CustomerSchema is the customer metric field set.
var CustomerSchema = record.NewSchema(
	FieldCustomerDate,
	FieldTotalCustomer,
	FieldNewCustomers,
	record.Field[CustomerMetric]{Key: "returningCustomers", Kind: record.KindNumber, Get: func(c CustomerMetric) record.Value { return record.Int(c.ReturningCustomers) }},
	record.Field[CustomerMetric]{Key: "averageOrderValue", Kind: record.KindNumber, Get: func(c CustomerMetric) record.Value { return record.Money(c.AverageOrderValue) }},
)
