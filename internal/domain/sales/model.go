// Package sales holds daily sales and customer metric snapshots.
package sales

import (
	"time"

	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
)

// Channels seen in sales rows.
const (
	ChannelOnline = "online"
	ChannelStore  = "store"
	ChannelMobile = "mobile"
)

// Metric is one day of sales on one channel.
type Metric struct {
	ID        id.ID       `db:"id" json:"id"`
	Date      time.Time   `db:"date" json:"date"`
	Revenue   types.Money `db:"revenue" json:"revenue"`
	Orders    int         `db:"orders" json:"orders"`
	Customers int         `db:"customers" json:"customers"`
	Channel   string      `db:"channel" json:"channel"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// OrderValue returns revenue per order for the day.
func (m Metric) OrderValue() types.Money {
	return types.DivInt(m.Revenue, m.Orders)
}

// CustomerMetric is a daily customer base snapshot.
type CustomerMetric struct {
	ID                 id.ID       `db:"id" json:"id"`
	Date               time.Time   `db:"date" json:"date"`
	TotalCustomers     int         `db:"total_customers" json:"totalCustomers"`
	NewCustomers       int         `db:"new_customers" json:"newCustomers"`
	ReturningCustomers int         `db:"returning_customers" json:"returningCustomers"`
	AverageOrderValue  types.Money `db:"average_order_value" json:"averageOrderValue"`
}
