// Package main seeds the database with demo users, metrics and inventory.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"adminsuite/internal/config"
	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/sales"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/storage/postgres"
	"adminsuite/pkg/logger"
)

const (
	seedDays       = 30
	inventoryCount = 50
	extraUsers     = 40
)

var (
	categories = []string{"Electronics", "Clothing", "Books", "Home & Garden", "Sports"}
	channels   = []string{sales.ChannelOnline, sales.ChannelMobile, sales.ChannelStore}
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	if err := postgres.Migrate(ctx, txm); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalw("failed to hash password", "error", err)
	}

	now := time.Now().UTC()
	rng := rand.New(rand.NewPCG(uint64(now.Unix()), 42))
	d := dataset{
		users:     seedUsers(rng, hash, now),
		sales:     seedSales(rng, now),
		customers: seedCustomers(rng, now),
		items:     seedInventory(rng, now),
	}

	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := postgres.Truncate(ctx, txm,
			postgres.TableUsers,
			postgres.TableSalesMetrics,
			postgres.TableCustomerMetrics,
			postgres.TableInventoryItems,
		); err != nil {
			return err
		}
		return d.load(ctx, txm, log)
	})
	if err != nil {
		log.Fatalw("failed to seed", "error", err)
	}

	log.Infow("seeding completed successfully",
		"admin", "admin@example.com",
		"manager", "manager@example.com")
}

type dataset struct {
	users     []users.User
	sales     []sales.Metric
	customers []sales.CustomerMetric
	items     []inventory.Item
}

func (d dataset) load(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	steps := []struct {
		table string
		copy  func() (int64, error)
	}{
		{postgres.TableUsers, func() (int64, error) { return postgres.CopyRecords(ctx, txm, postgres.TableUsers, d.users) }},
		{postgres.TableSalesMetrics, func() (int64, error) {
			return postgres.CopyRecords(ctx, txm, postgres.TableSalesMetrics, d.sales)
		}},
		{postgres.TableCustomerMetrics, func() (int64, error) {
			return postgres.CopyRecords(ctx, txm, postgres.TableCustomerMetrics, d.customers)
		}},
		{postgres.TableInventoryItems, func() (int64, error) {
			return postgres.CopyRecords(ctx, txm, postgres.TableInventoryItems, d.items)
		}},
	}
	for _, s := range steps {
		n, err := s.copy()
		if err != nil {
			return err
		}
		log.Infow("seeded", "table", s.table, "rows", n)
	}
	return nil
}

func seedUsers(rng *rand.Rand, hash string, now time.Time) []users.User {
	out := []users.User{
		newUser("admin@example.com", "Admin", "User", users.RoleAdmin, hash, now.AddDate(0, 0, -120)),
		newUser("manager@example.com", "Manager", "User", users.RoleManager, hash, now.AddDate(0, 0, -90)),
	}
	out[0].Permissions = auth.DefaultPermissions[users.RoleAdmin]
	out[1].Permissions = auth.DefaultPermissions[users.RoleManager]

	firstNames := []string{"Ana", "Ben", "Chloe", "Dev", "Eli", "Fay", "Gus", "Hana"}
	lastNames := []string{"Ito", "Jones", "Khan", "Lopez", "Meyer", "Novak"}
	for i := range extraUsers {
		role := users.Roles[1+rng.IntN(len(users.Roles)-1)]
		created := now.Add(-time.Duration(rng.IntN(60*24)) * time.Hour)
		u := newUser(fmt.Sprintf("user%02d@example.com", i+1),
			firstNames[rng.IntN(len(firstNames))], lastNames[rng.IntN(len(lastNames))],
			role, hash, created)
		u.IsActive = rng.IntN(10) > 1
		if rng.IntN(3) > 0 {
			last := created.Add(time.Duration(rng.Int64N(int64(now.Sub(created)) + 1)))
			u.LastLogin = &last
		}
		out = append(out, u)
	}
	return out
}

func newUser(email, first, last string, role users.Role, hash string, created time.Time) users.User {
	return users.User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Permissions:  []string{},
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func seedSales(rng *rand.Rand, now time.Time) []sales.Metric {
	out := make([]sales.Metric, 0, seedDays+1)
	for i := seedDays; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		out = append(out, sales.Metric{
			ID:        id.New(),
			Date:      date,
			Revenue:   money(rng, 5000, 10000),
			Orders:    50 + rng.IntN(100),
			Customers: 40 + rng.IntN(80),
			Channel:   channels[rng.IntN(len(channels))],
			CreatedAt: now,
		})
	}
	return out
}

func seedCustomers(rng *rand.Rand, now time.Time) []sales.CustomerMetric {
	out := make([]sales.CustomerMetric, 0, seedDays+1)
	for i := seedDays; i >= 0; i-- {
		out = append(out, sales.CustomerMetric{
			ID:                 id.New(),
			Date:               now.AddDate(0, 0, -i),
			TotalCustomers:     1000 + i*10,
			NewCustomers:       10 + rng.IntN(50),
			ReturningCustomers: 100 + rng.IntN(200),
			AverageOrderValue:  money(rng, 150, 100),
		})
	}
	return out
}

func seedInventory(rng *rand.Rand, now time.Time) []inventory.Item {
	out := make([]inventory.Item, 0, inventoryCount)
	for i := 1; i <= inventoryCount; i++ {
		supplier := fmt.Sprintf("Supplier %d", 1+rng.IntN(5))
		stock := rng.IntN(110)
		out = append(out, inventory.Item{
			ID:           id.New(),
			SKU:          fmt.Sprintf("SKU-%03d", i),
			Name:         fmt.Sprintf("Product %d", i),
			Category:     categories[rng.IntN(len(categories))],
			Stock:        stock,
			Reserved:     min(rng.IntN(10), stock),
			Price:        money(rng, 50, 500),
			Cost:         money(rng, 25, 250),
			Supplier:     &supplier,
			ReorderLevel: 10,
			LastUpdated:  now,
			CreatedAt:    now,
		})
	}
	return out
}

// money returns a random amount in [base, base+spread) rounded to cents.
func money(rng *rand.Rand, base, spread float64) types.Money {
	return types.NewMoney(base + rng.Float64()*spread).Round(2)
}
