// Package analytics reduces stored records into dashboard aggregates:
// totals, averages, growth rates, breakdowns and dense time series.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/tx"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/sales"
	"adminsuite/internal/domain/users"
	"adminsuite/pkg/logger"
)

const recentActivityLimit = 5

// Service builds analytics reports.
type Service struct {
	users     users.Repository
	sales     sales.Repository
	inventory inventory.Repository
	txManager tx.ReadOnlyManager
	now       func() time.Time
}

// NewService creates an analytics service.
func NewService(
	usersRepo users.Repository,
	salesRepo sales.Repository,
	inventoryRepo inventory.Repository,
	txManager tx.ReadOnlyManager,
) *Service {
	return &Service{
		users:     usersRepo,
		sales:     salesRepo,
		inventory: inventoryRepo,
		txManager: txManager,
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Dashboard compares the current period with the previous one of equal length.
func (s *Service) Dashboard(ctx context.Context, period Period) (*Dashboard, error) {
	now := s.now().UTC()
	cur := period.Window(now)
	prev := cur.Previous()

	var all []users.User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		all, err = s.users.List(ctx, types.DateRange{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard users: %w", err)
	}

	var (
		active, activeBefore   int
		loggedCur, loggedPrev  int
		createdCur, createdPrv []users.User
	)
	for _, u := range all {
		if u.IsActive {
			active++
			if u.CreatedAt.Before(cur.From) {
				activeBefore++
			}
		}
		if u.LoggedInWithin(cur.From, cur.To) {
			loggedCur++
		}
		if u.LoggedInWithin(prev.From, prev.To) {
			loggedPrev++
		}
		switch {
		case cur.Contains(u.CreatedAt):
			createdCur = append(createdCur, u)
		case prev.Contains(u.CreatedAt):
			createdPrv = append(createdPrv, u)
		}
	}

	byRole := Breakdown(all, users.FieldRole)
	d := &Dashboard{
		Period: period,
		Overview: Overview{
			TotalUsers:  len(all),
			ActiveUsers: active,
			TotalRoles:  len(byRole),
			Activity:    Round1(ratio(loggedCur, len(all))),
			Growth: OverviewGrowth{
				Users:       Round1(GrowthRate(float64(len(createdCur)), float64(len(createdPrv)))),
				ActiveUsers: Round1(GrowthRate(float64(active), float64(activeBefore))),
				Activity:    Round1(GrowthRate(float64(loggedCur), float64(loggedPrev))),
			},
		},
		Charts: Charts{
			UserGrowth:    GroupByDay(createdCur, users.FieldCreatedAt, cur.From, cur.To),
			UsersByRole:   byRole,
			LoginActivity: GroupByDay(all, users.FieldLastLogin, cur.From, cur.To),
		},
		RecentActivity: recentActivity(all, recentActivityLimit),
		GeneratedAt:    now,
	}

	logger.Debug(ctx, "dashboard built",
		"period", period,
		"users", len(all),
		"new_users", len(createdCur))

	return d, nil
}

// ratio returns part/whole in percent, unrounded.
func ratio(part, whole int) float64 {
	return Average(float64(part)*100, whole)
}

func recentActivity(all []users.User, limit int) []ActivityEntry {
	sorted := append([]users.User(nil), all...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]ActivityEntry, len(sorted))
	for i, u := range sorted {
		name := u.FullName()
		if name == "" {
			name = u.Email
		}
		out[i] = ActivityEntry{
			ID:        u.ID.String(),
			Name:      name,
			Email:     u.Email,
			Role:      string(u.Role),
			Action:    "User registered",
			Timestamp: u.CreatedAt,
		}
	}
	return out
}

// UserAnalytics breaks down users registered within the period.
func (s *Service) UserAnalytics(ctx context.Context, period Period, g Granularity) (*UserReport, error) {
	window := period.Window(s.now().UTC())

	var registered []users.User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		registered, err = s.users.List(ctx, window)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("user analytics: %w", err)
	}

	return &UserReport{
		Period:            period,
		GroupBy:           g,
		TotalUsers:        len(registered),
		UsersByRole:       Breakdown(registered, users.FieldRole),
		UsersByStatus:     Breakdown(registered, users.FieldStatus),
		RegistrationTrend: GroupByPeriod(registered, users.FieldCreatedAt, g, window.From, window.To),
	}, nil
}

// salesRange fills the missing bounds of r independently.
func (s *Service) salesRange(r types.DateRange) (types.DateRange, error) {
	if r.To.IsZero() {
		r.To = s.now().UTC()
	}
	if r.From.IsZero() {
		r.From = DefaultPeriod.Window(r.To).From
	}
	if r.From.After(r.To) {
		return r, apperror.NewValidation("startDate is after endDate").
			WithDetail("startDate", r.From).
			WithDetail("endDate", r.To)
	}
	return r, nil
}

// SalesAnalytics summarizes sales in r and compares revenue with the
// preceding range of equal length. A missing end is now; a missing start
// lies the default period before the end.
func (s *Service) SalesAnalytics(ctx context.Context, r types.DateRange, channel string) (*SalesReport, error) {
	r, err := s.salesRange(r)
	if err != nil {
		return nil, err
	}
	prevRange := r.Previous()

	var (
		cur, prev []sales.Metric
		customers []sales.CustomerMetric
	)
	err = s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if cur, err = s.sales.ListSales(ctx, r, channel); err != nil {
			return err
		}
		if prev, err = s.sales.ListSales(ctx, prevRange, channel); err != nil {
			return err
		}
		customers, err = s.sales.ListCustomers(ctx, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sales analytics: %w", err)
	}

	revenue := types.Zero()
	orders := 0
	for _, m := range cur {
		revenue = revenue.Add(m.Revenue)
		orders += m.Orders
	}

	if cur == nil {
		cur = []sales.Metric{}
	}
	if customers == nil {
		customers = []sales.CustomerMetric{}
	}

	return &SalesReport{
		StartDate:         r.From,
		EndDate:           r.To,
		Channel:           channel,
		Sales:             cur,
		TotalRevenue:      revenue,
		TotalOrders:       orders,
		AverageOrderValue: types.DivInt(revenue, orders),
		RevenueGrowth: Round1(Growth(
			Summarize(cur, sales.FieldRevenue),
			Summarize(prev, sales.FieldRevenue),
		)),
		DailyRevenue:   SumByDay(cur, sales.FieldDate, sales.FieldRevenue, r.From, r.To),
		SalesByChannel: Breakdown(cur, sales.FieldChannel),
		Customers:      customers,
		CustomerGrowth: Round1(customerGrowth(customers)),
	}, nil
}

// customerGrowth compares the two latest snapshots. Input is oldest first.
func customerGrowth(snapshots []sales.CustomerMetric) float64 {
	n := len(snapshots)
	if n < 2 {
		return 0
	}
	return GrowthRate(
		float64(snapshots[n-1].TotalCustomers),
		float64(snapshots[n-2].TotalCustomers),
	)
}

// InventorySummary totals stock levels, optionally within one category.
func (s *Service) InventorySummary(ctx context.Context, category string) (*InventoryReport, error) {
	var items []inventory.Item
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.inventory.List(ctx, category)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	if items == nil {
		items = []inventory.Item{}
	}

	rep := &InventoryReport{
		Category:   category,
		Items:      items,
		TotalItems: len(items),
		TotalStock: int(SumField(items, inventory.FieldStock)),
		TotalValue: types.Zero(),
		ByCategory: Breakdown(items, inventory.FieldCategory),
		ByStatus:   Breakdown(items, inventory.FieldStockStatus),
	}
	for _, it := range items {
		rep.TotalValue = rep.TotalValue.Add(it.StockValue())
		switch it.Status() {
		case inventory.StatusLowStock:
			rep.LowStock++
		case inventory.StatusOutOfStock:
			rep.OutOfStock++
		}
	}
	return rep, nil
}
