package analytics

import (
	"time"

	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/sales"
)

// Period names a trailing reporting window.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
)

// DefaultPeriod is used when a request names none.
const DefaultPeriod = Period30d

// ParsePeriod validates s. Empty input is DefaultPeriod.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(s); p {
	case "":
		return DefaultPeriod, true
	case Period7d, Period30d, Period90d, Period1y:
		return p, true
	default:
		return "", false
	}
}

// Window returns [start, now] for the period.
func (p Period) Window(now time.Time) types.DateRange {
	var start time.Time
	switch p {
	case Period7d:
		start = now.AddDate(0, 0, -7)
	case Period90d:
		start = now.AddDate(0, 0, -90)
	case Period1y:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, 0, -30)
	}
	return types.DateRange{From: start, To: now}
}

// OverviewGrowth holds period-over-period growth percentages.
type OverviewGrowth struct {
	Users       float64 `json:"users"`
	ActiveUsers float64 `json:"activeUsers"`
	Activity    float64 `json:"activity"`
}

// Overview is the dashboard headline block.
type Overview struct {
	TotalUsers  int            `json:"totalUsers"`
	ActiveUsers int            `json:"activeUsers"`
	TotalRoles  int            `json:"totalRoles"`
	Activity    float64        `json:"activity"`
	Growth      OverviewGrowth `json:"growth"`
}

// Charts are the dashboard series.
type Charts struct {
	UserGrowth    []Bucket `json:"userGrowth"`
	UsersByRole   []Share  `json:"usersByRole"`
	LoginActivity []Bucket `json:"loginActivity"`
}

// ActivityEntry is one recent registration.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Dashboard is the admin landing page payload.
type Dashboard struct {
	Period         Period          `json:"period"`
	Overview       Overview        `json:"overview"`
	Charts         Charts          `json:"charts"`
	RecentActivity []ActivityEntry `json:"recentActivity"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// UserReport breaks down registrations within a period.
type UserReport struct {
	Period            Period      `json:"period"`
	GroupBy           Granularity `json:"groupBy"`
	TotalUsers        int         `json:"totalUsers"`
	UsersByRole       []Share     `json:"usersByRole"`
	UsersByStatus     []Share     `json:"usersByStatus"`
	RegistrationTrend []Bucket    `json:"registrationTrend"`
}

// SalesReport summarizes revenue within a date range.
type SalesReport struct {
	StartDate         time.Time              `json:"startDate"`
	EndDate           time.Time              `json:"endDate"`
	Channel           string                 `json:"channel,omitempty"`
	Sales             []sales.Metric         `json:"sales"`
	TotalRevenue      types.Money            `json:"totalRevenue"`
	TotalOrders       int                    `json:"totalOrders"`
	AverageOrderValue types.Money            `json:"averageOrderValue"`
	RevenueGrowth     float64                `json:"revenueGrowth"`
	DailyRevenue      []SumBucket            `json:"dailyRevenue"`
	SalesByChannel    []Share                `json:"salesByChannel"`
	Customers         []sales.CustomerMetric `json:"customers"`
	CustomerGrowth    float64                `json:"customerGrowth"`
}

// InventoryReport summarizes stock levels.
type InventoryReport struct {
	Category   string           `json:"category,omitempty"`
	Items      []inventory.Item `json:"items"`
	TotalItems int              `json:"totalItems"`
	TotalStock int              `json:"totalStock"`
	TotalValue types.Money      `json:"totalValue"`
	LowStock   int              `json:"lowStock"`
	OutOfStock int              `json:"outOfStock"`
	ByCategory []Share          `json:"byCategory"`
	ByStatus   []Share          `json:"byStatus"`
}
