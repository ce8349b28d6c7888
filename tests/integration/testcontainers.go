// Package integration runs the API against a real PostgreSQL instance.
// These tests require Docker.
//
// Usage:
//
//	go test ./tests/integration/
//
// Each suite starts a PostgreSQL container, migrates the schema, seeds
// the system categories and serves the full router over httptest.
package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/handlers"
	"github.com/plata-app/plata/internal/services"
)

// TestServer holds the container, database and HTTP server under test.
type TestServer struct {
	Container testcontainers.Container
	DB        *db.DB
	Server    *httptest.Server
}

// SetupTestServer starts a PostgreSQL container and serves the API on a
// local test server.
func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("plata_test"),
		postgres.WithUsername("plata_user"),
		postgres.WithPassword("plata_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	config := &db.Config{
		Host:     host,
		Port:     port.Port(),
		User:     "plata_user",
		Password: "plata_password",
		Name:     "plata_test",
		SSLMode:  "disable",
	}

	database, err := db.Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	if err := services.NewCategoryService(database).EnsureSystemCategories(ctx); err != nil {
		t.Fatalf("Failed to seed system categories: %v", err)
	}

	server := httptest.NewServer(handlers.NewRouter(database))

	return &TestServer{
		Container: pgContainer,
		DB:        database,
		Server:    server,
	}
}

// Cleanup stops the test server and tears the container down.
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	if err := ts.DB.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
	if err := ts.Container.Terminate(context.Background()); err != nil {
		t.Errorf("Failed to terminate container: %v", err)
	}
}
