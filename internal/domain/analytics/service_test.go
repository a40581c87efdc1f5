package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/id"
	"adminsuite/internal/core/tx"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/sales"
	"adminsuite/internal/domain/users"
)

var now = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

type fakeUsers struct {
	users []users.User
	err   error
}

func (f *fakeUsers) List(_ context.Context, r types.DateRange) ([]users.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []users.User
	for _, u := range f.users {
		if r.Contains(u.CreatedAt) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) GetByID(context.Context, id.ID) (*users.User, error)     { return nil, nil }
func (f *fakeUsers) GetByEmail(context.Context, string) (*users.User, error) { return nil, nil }
func (f *fakeUsers) UpdateLastLogin(context.Context, id.ID, time.Time) error { return nil }

type fakeSales struct {
	sales     []sales.Metric
	customers []sales.CustomerMetric
}

func (f *fakeSales) ListSales(_ context.Context, r types.DateRange, channel string) ([]sales.Metric, error) {
	var out []sales.Metric
	for _, m := range f.sales {
		if r.Contains(m.Date) && (channel == "" || m.Channel == channel) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSales) ListCustomers(_ context.Context, r types.DateRange) ([]sales.CustomerMetric, error) {
	var out []sales.CustomerMetric
	for _, c := range f.customers {
		if r.Contains(c.Date) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeInventory struct{ items []inventory.Item }

func (f *fakeInventory) List(_ context.Context, category string) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, it := range f.items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func tp(t time.Time) *time.Time { return &t }

func newService(u *fakeUsers, s *fakeSales, i *fakeInventory) *Service {
	return NewService(u, s, i, tx.Direct).WithClock(func() time.Time { return now })
}

func TestService_Dashboard(t *testing.T) {
	u := &fakeUsers{users: []users.User{
		// previous 7d window: two registrations, one login
		{ID: id.New(), Email: "a@x.io", FirstName: "A", Role: users.RoleAdmin, IsActive: true, CreatedAt: daysAgo(12), LastLogin: tp(daysAgo(10))},
		{ID: id.New(), Email: "b@x.io", Role: users.RoleUser, IsActive: true, CreatedAt: daysAgo(9)},
		// current window: three registrations, two logins
		{ID: id.New(), Email: "c@x.io", FirstName: "C", LastName: "Dee", Role: users.RoleUser, IsActive: true, CreatedAt: daysAgo(5), LastLogin: tp(daysAgo(1))},
		{ID: id.New(), Email: "d@x.io", Role: users.RoleUser, IsActive: false, CreatedAt: daysAgo(3), LastLogin: tp(daysAgo(2))},
		{ID: id.New(), Email: "e@x.io", Role: users.RoleManager, IsActive: true, CreatedAt: daysAgo(1)},
	}}

	d, err := newService(u, &fakeSales{}, &fakeInventory{}).Dashboard(context.Background(), Period7d)
	require.NoError(t, err)

	assert.Equal(t, 5, d.Overview.TotalUsers)
	assert.Equal(t, 4, d.Overview.ActiveUsers)
	assert.Equal(t, 3, d.Overview.TotalRoles)
	assert.Equal(t, 40.0, d.Overview.Activity)

	// New users 3 vs 2, active base 4 vs 2, logins 2 vs 1.
	assert.Equal(t, 50.0, d.Overview.Growth.Users)
	assert.Equal(t, 100.0, d.Overview.Growth.ActiveUsers)
	assert.Equal(t, 100.0, d.Overview.Growth.Activity)

	assert.Len(t, d.Charts.UserGrowth, 8)
	total := 0
	for _, b := range d.Charts.UserGrowth {
		total += b.Count
	}
	assert.Equal(t, 3, total)

	assert.Equal(t, Share{Key: "USER", Count: 3, Percentage: 60}, d.Charts.UsersByRole[0])

	require.Len(t, d.RecentActivity, 5)
	assert.Equal(t, "e@x.io", d.RecentActivity[0].Name, "falls back to email")
	assert.Equal(t, "C Dee", d.RecentActivity[2].Name)
	assert.Equal(t, now, d.GeneratedAt)
}

func TestService_DashboardZeroBaseline(t *testing.T) {
	u := &fakeUsers{users: []users.User{
		{ID: id.New(), Email: "n@x.io", Role: users.RoleUser, IsActive: true, CreatedAt: daysAgo(1)},
	}}
	d, err := newService(u, &fakeSales{}, &fakeInventory{}).Dashboard(context.Background(), Period30d)
	require.NoError(t, err)
	assert.Zero(t, d.Overview.Growth.Users)
	assert.Zero(t, d.Overview.Growth.Activity)
	assert.Zero(t, d.Overview.Activity)
}

func TestService_DashboardError(t *testing.T) {
	boom := errors.New("db down")
	_, err := newService(&fakeUsers{err: boom}, &fakeSales{}, &fakeInventory{}).Dashboard(context.Background(), Period7d)
	assert.ErrorIs(t, err, boom)
}

func TestService_UserAnalytics(t *testing.T) {
	u := &fakeUsers{users: []users.User{
		{Role: users.RoleUser, IsActive: true, CreatedAt: daysAgo(40)},
		{Role: users.RoleUser, IsActive: false, CreatedAt: daysAgo(3)},
		{Role: users.RoleAdmin, IsActive: true, CreatedAt: daysAgo(2)},
	}}

	rep, err := newService(u, &fakeSales{}, &fakeInventory{}).UserAnalytics(context.Background(), Period30d, ByMonth)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.TotalUsers)
	assert.Len(t, rep.UsersByStatus, 2)
	assert.Equal(t, []Bucket{{Date: "2024-03", Count: 2}}, rep.RegistrationTrend)
}

func TestService_SalesAnalytics(t *testing.T) {
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	s := &fakeSales{
		sales: []sales.Metric{
			{Date: jan(1), Revenue: types.MustMoney("60"), Orders: 2, Channel: sales.ChannelOnline},
			{Date: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), Revenue: types.MustMoney("100"), Orders: 2, Channel: sales.ChannelOnline},
			{Date: jan(3), Revenue: types.MustMoney("90.50"), Orders: 1, Channel: sales.ChannelStore},
			{Date: jan(2), Revenue: types.MustMoney("0"), Orders: 0, Channel: sales.ChannelStore},
		},
		customers: []sales.CustomerMetric{
			{Date: jan(1), TotalCustomers: 200},
			{Date: jan(3), TotalCustomers: 250},
		},
	}
	r := types.DateRange{From: jan(1), To: jan(3)}

	rep, err := newService(&fakeUsers{}, s, &fakeInventory{}).SalesAnalytics(context.Background(), r, "")
	require.NoError(t, err)

	assert.True(t, types.MustMoney("150.50").Equal(rep.TotalRevenue))
	assert.Equal(t, 3, rep.TotalOrders)
	assert.True(t, types.MustMoney("50.17").Equal(rep.AverageOrderValue))
	assert.Equal(t, 50.5, rep.RevenueGrowth)
	assert.Equal(t, []SumBucket{
		{Date: "2024-01-01", Total: 60},
		{Date: "2024-01-02", Total: 0},
		{Date: "2024-01-03", Total: 90.5},
	}, rep.DailyRevenue)
	assert.Equal(t, 25.0, rep.CustomerGrowth)
	assert.Len(t, rep.SalesByChannel, 2)
}

func TestService_SalesAnalyticsEmpty(t *testing.T) {
	rep, err := newService(&fakeUsers{}, &fakeSales{}, &fakeInventory{}).SalesAnalytics(context.Background(), types.DateRange{}, "online")
	require.NoError(t, err)
	assert.NotNil(t, rep.Sales)
	assert.True(t, rep.TotalRevenue.IsZero())
	assert.True(t, rep.AverageOrderValue.IsZero())
	assert.Zero(t, rep.RevenueGrowth)
	assert.Len(t, rep.DailyRevenue, 31)
}

func TestService_SalesAnalyticsOpenRange(t *testing.T) {
	svc := newService(&fakeUsers{}, &fakeSales{}, &fakeInventory{})
	from := now.AddDate(0, 0, -3)

	rep, err := svc.SalesAnalytics(context.Background(), types.DateRange{From: from}, "")
	require.NoError(t, err)
	assert.Equal(t, from, rep.StartDate, "a given start is kept")
	assert.Equal(t, now.UTC(), rep.EndDate)
	assert.Len(t, rep.DailyRevenue, 4)

	to := now.AddDate(0, 0, -10)
	rep, err = svc.SalesAnalytics(context.Background(), types.DateRange{To: to}, "")
	require.NoError(t, err)
	assert.Equal(t, to.AddDate(0, 0, -30), rep.StartDate)
	assert.Equal(t, to, rep.EndDate)

	_, err = svc.SalesAnalytics(context.Background(), types.DateRange{From: now.AddDate(0, 0, 5)}, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestService_InventorySummary(t *testing.T) {
	inv := &fakeInventory{items: []inventory.Item{
		{SKU: "A", Category: "tools", Stock: 10, ReorderLevel: 3, Price: types.MustMoney("2.5")},
		{SKU: "B", Category: "tools", Stock: 2, ReorderLevel: 3, Price: types.MustMoney("10")},
		{SKU: "C", Category: "paint", Stock: 0, ReorderLevel: 3, Price: types.MustMoney("99")},
	}}
	svc := newService(&fakeUsers{}, &fakeSales{}, inv)

	rep, err := svc.InventorySummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TotalItems)
	assert.Equal(t, 12, rep.TotalStock)
	assert.True(t, types.MustMoney("45").Equal(rep.TotalValue))
	assert.Equal(t, 1, rep.LowStock)
	assert.Equal(t, 1, rep.OutOfStock)
	assert.Equal(t, Share{Key: "tools", Count: 2, Percentage: 67}, rep.ByCategory[0])

	rep, err = svc.InventorySummary(context.Background(), "paint")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.TotalItems)
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, Period30d, p)

	_, ok = ParsePeriod("2w")
	assert.False(t, ok)

	w := Period1y.Window(now)
	assert.Equal(t, time.Date(2023, 3, 31, 12, 0, 0, 0, time.UTC), w.From)
}
