package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"food-court/internal/model"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

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
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			role VARCHAR(20) NOT NULL CHECK (role IN ('customer', 'restaurant_owner', 'delivery_person')),
			phone_number VARCHAR(20),
			address TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL,
			phone_number VARCHAR(20) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES users(id),
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			delivery_person_id UUID REFERENCES users(id) ON DELETE SET NULL,
			total_amount DECIMAL(10, 2) NOT NULL CHECK (total_amount >= 0),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			delivery_address TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price_at_order DECIMAL(10, 2) NOT NULL CHECK (price_at_order >= 0),
			UNIQUE (order_id, menu_item_id)
		);

		CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items(restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
		CREATE INDEX IF NOT EXISTS idx_orders_restaurant_id ON orders(restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// Fixture holds the IDs of the seeded base data.
type Fixture struct {
	CustomerID   uuid.UUID
	OwnerID      uuid.UUID
	CourierID    uuid.UUID
	RestaurantID uuid.UUID
	BurgerID     uuid.UUID
	FriesID      uuid.UUID
	SpecialID    uuid.UUID // seeded as unavailable
}

// SeedBaseData inserts one user per role, an active restaurant, and a
// small menu: two available items and one unavailable.
func SeedBaseData(t *testing.T, pool *pgxpool.Pool) *Fixture {
	t.Helper()

	ctx := context.Background()
	f := &Fixture{
		CustomerID:   uuid.New(),
		OwnerID:      uuid.New(),
		CourierID:    uuid.New(),
		RestaurantID: uuid.New(),
		BurgerID:     uuid.New(),
		FriesID:      uuid.New(),
		SpecialID:    uuid.New(),
	}

	users := []struct {
		id       uuid.UUID
		username string
		role     model.Role
	}{
		{f.CustomerID, "alice", model.RoleCustomer},
		{f.OwnerID, "bob", model.RoleRestaurantOwner},
		{f.CourierID, "carol", model.RoleDeliveryPerson},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx,
			"INSERT INTO users (id, username, role) VALUES ($1, $2, $3)",
			u.id, u.username, u.role,
		)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", u.username, err)
		}
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO restaurants (id, owner_id, name, address, is_active) VALUES ($1, $2, $3, $4, TRUE)",
		f.RestaurantID, f.OwnerID, "Test Burger Bar", "1 High Street",
	)
	if err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}

	items := []struct {
		id        uuid.UUID
		name      string
		price     string
		available bool
	}{
		{f.BurgerID, "Cheeseburger", "5.00", true},
		{f.FriesID, "Fries", "3.50", true},
		{f.SpecialID, "Chef Special", "12.00", false},
	}
	for _, item := range items {
		_, err := pool.Exec(ctx,
			"INSERT INTO menu_items (id, restaurant_id, name, price, is_available) VALUES ($1, $2, $3, $4, $5)",
			item.id, f.RestaurantID, item.name, decimal.RequireFromString(item.price), item.available,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", item.name, err)
		}
	}

	return f
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "menu_items", "restaurants", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
