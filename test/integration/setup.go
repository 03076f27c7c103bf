package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

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

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price > 0),
			category VARCHAR(100) NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			preparation_minutes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL,
			restaurant_id UUID NOT NULL,
			courier_id UUID,
			status VARCHAR(20) NOT NULL,
			total_amount DECIMAL(10, 2) NOT NULL,
			delivery_fee DECIMAL(10, 2) NOT NULL,
			dest_latitude DOUBLE PRECISION NOT NULL,
			dest_longitude DOUBLE PRECISION NOT NULL,
			est_delivery_minutes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			accepted_at TIMESTAMPTZ,
			prepared_at TIMESTAMPTZ,
			picked_up_at TIMESTAMPTZ,
			delivered_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DECIMAL(10, 2) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
		CREATE INDEX IF NOT EXISTS idx_orders_restaurant_id ON orders(restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items(restaurant_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedMenuItems inserts test menu data for the given restaurant and
// returns the inserted items.
func SeedMenuItems(t *testing.T, pool *pgxpool.Pool, restaurantID uuid.UUID) []model.MenuItem {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	items := []model.MenuItem{
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: 12.99, Category: "Mains", Available: true, PreparationMinutes: 15, CreatedAt: now},
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Caesar Salad", Description: "Romaine, parmesan, croutons", Price: 8.50, Category: "Starters", Available: true, PreparationMinutes: 5, CreatedAt: now},
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Tiramisu", Description: "Classic dessert", Price: 6.00, Category: "Desserts", Available: true, PreparationMinutes: 2, CreatedAt: now},
	}

	for _, item := range items {
		_, err := pool.Exec(ctx,
			`INSERT INTO menu_items (id, restaurant_id, name, description, price, category, available, preparation_minutes, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.RestaurantID, item.Name, item.Description,
			item.Price, item.Category, item.Available, item.PreparationMinutes, item.CreatedAt,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", item.Name, err)
		}
	}

	return items
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "menu_items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
