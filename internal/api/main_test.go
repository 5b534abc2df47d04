package api

import (
	"context"
	"log"
	"os"
	"serwer-zdjec/internal/auth"
	"serwer-zdjec/internal/config"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/websocket"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testServer *Server
var testStorageDir string

const testBaseURL = "https://photos.example.com/app/photos/"

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	testStorageDir, err = os.MkdirTemp("", "api-photo-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(testStorageDir)

	photoStorage, err := storage.NewPhotoStorage(testStorageDir)
	if err != nil {
		log.Fatalf("Could not create photo storage: %s", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(pool, wsHub)
	cfg := &config.Config{
		Auth:    config.AuthConfig{Mode: auth.ModeHeader},
		Storage: config.StorageConfig{Path: testStorageDir, BaseURL: testBaseURL},
	}

	// Tryb "header" — w testach uid podajemy wprost w nagłówku
	testServer = NewServer(cfg, store, photoStorage, wsHub, &auth.HeaderVerifier{})

	os.Exit(m.Run())
}

func withIdentity(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, identityContextKey, &auth.Identity{UID: uid})
}
