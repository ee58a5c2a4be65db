package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kitedesk/internal/migrations"
	"kitedesk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, runs the embedded
// migrations against it and returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	migrate(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// migrate applies the embedded goose migrations.
func migrate(t *testing.T, connStr string) {
	t.Helper()

	db, err := goose.OpenDBWithDriver("pgx", connStr)
	if err != nil {
		t.Fatalf("failed to open database for migrations: %v", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

// SeedCustomer inserts a customer and returns its ID.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)",
		id, name, name+"@example.com",
	)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return id
}

// SeedLessonService inserts a lesson service with its config and tiers and
// returns the service ID.
func SeedLessonService(t *testing.T, pool *pgxpool.Pool, scope model.TierScope, basePricePerHour float64, tiers []model.PricingTier) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO services (id, name, category) VALUES ($1, $2, 'lessons')",
		id, fmt.Sprintf("Kite Lesson %s", id.String()[:8]),
	)
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO lesson_configs (service_id, requires_package_pricing, tier_scope, base_price_per_hour, default_duration_hours)
		 VALUES ($1, TRUE, $2, $3, 1)`,
		id, string(scope), basePricePerHour,
	)
	if err != nil {
		t.Fatalf("failed to seed lesson config: %v", err)
	}

	for _, tier := range tiers {
		_, err = pool.Exec(ctx,
			"INSERT INTO pricing_tiers (id, service_id, from_hours, to_hours, price_per_hour) VALUES ($1, $2, $3, $4, $5)",
			uuid.New(), id, tier.FromHours, tier.ToHours, tier.PricePerHour,
		)
		if err != nil {
			t.Fatalf("failed to seed pricing tier: %v", err)
		}
	}

	return id
}

// SeedRentalService inserts a rental service with the given rates. Nil rates
// leave the billing unit unavailable.
func SeedRentalService(t *testing.T, pool *pgxpool.Pool, hourly, daily, weekly *float64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO services (id, name, category) VALUES ($1, $2, 'rentals')",
		id, fmt.Sprintf("Gear Rental %s", id.String()[:8]),
	)
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO rental_configs (service_id, hourly_rate, daily_rate, weekly_rate) VALUES ($1, $2, $3, $4)",
		id, hourly, daily, weekly,
	)
	if err != nil {
		t.Fatalf("failed to seed rental config: %v", err)
	}

	return id
}

// SeedStorageService inserts a storage service with the given rates.
func SeedStorageService(t *testing.T, pool *pgxpool.Pool, daily, weekly, monthly *float64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO services (id, name, category) VALUES ($1, $2, 'storage')",
		id, fmt.Sprintf("Board Storage %s", id.String()[:8]),
	)
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO storage_configs (service_id, daily_rate, weekly_rate, monthly_rate) VALUES ($1, $2, $3, $4)",
		id, daily, weekly, monthly,
	)
	if err != nil {
		t.Fatalf("failed to seed storage config: %v", err)
	}

	return id
}

// SeedGroup inserts an order group for a customer and returns its ID.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, customerID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO order_groups (id, customer_id, name) VALUES ($1, $2, 'camp week')",
		id, customerID,
	)
	if err != nil {
		t.Fatalf("failed to seed order group: %v", err)
	}
	return id
}

// SeedLessonOrder inserts an uncalculated lesson order with its detail record
// and returns the order ID. groupID may be nil for an ungrouped order.
func SeedLessonOrder(t *testing.T, pool *pgxpool.Pool, customerID, serviceID uuid.UUID, groupID *uuid.UUID, starting, ending time.Time) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO orders (id, customer_id, service_id, group_id) VALUES ($1, $2, $3, $4)",
		id, customerID, serviceID, groupID,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO lesson_details (order_id, starting, ending) VALUES ($1, $2, $3)",
		id, starting, ending,
	)
	if err != nil {
		t.Fatalf("failed to seed lesson detail: %v", err)
	}

	return id
}

// SeedRentalOrder inserts an uncalculated rental order with its detail record.
func SeedRentalOrder(t *testing.T, pool *pgxpool.Pool, customerID, serviceID uuid.UUID, starting, ending time.Time, hourly, daily, weekly bool) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO orders (id, customer_id, service_id) VALUES ($1, $2, $3)",
		id, customerID, serviceID,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO rental_details (order_id, starting, ending, hourly, daily, weekly) VALUES ($1, $2, $3, $4, $5, $6)",
		id, starting, ending, hourly, daily, weekly,
	)
	if err != nil {
		t.Fatalf("failed to seed rental detail: %v", err)
	}

	return id
}

// SeedStorageOrder inserts an uncalculated storage order with its detail record.
func SeedStorageOrder(t *testing.T, pool *pgxpool.Pool, customerID, serviceID uuid.UUID, starting, ending time.Time, daily, weekly, monthly bool) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO orders (id, customer_id, service_id) VALUES ($1, $2, $3)",
		id, customerID, serviceID,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO storage_details (order_id, starting, ending, daily, weekly, monthly) VALUES ($1, $2, $3, $4, $5, $6)",
		id, starting, ending, daily, weekly, monthly,
	)
	if err != nil {
		t.Fatalf("failed to seed storage detail: %v", err)
	}

	return id
}

// CleanupDB removes all rows from the data tables between tests.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"storage_details", "rental_details", "lesson_details",
		"orders", "order_groups", "pricing_tiers",
		"storage_configs", "rental_configs", "lesson_configs",
		"services", "customers",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
