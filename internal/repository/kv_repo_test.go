package repository

import (
	"context"
	"path/filepath"
	"testing"

	"rewardsprint/internal/database"
	"rewardsprint/migrations"
)

func setupKVRepo(t *testing.T) *KVRepository {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(context.Background(), migrations.FS); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewKVRepository(db)
}

func TestKVRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := setupKVRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want not found", ok, err)
	}

	if err := repo.Set(ctx, "state", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(ctx, "state", "second"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}

	got, ok, err := repo.Get(ctx, "state")
	if err != nil || !ok {
		t.Fatalf("Get(state) = ok %v, err %v", ok, err)
	}
	if got != "second" {
		t.Errorf("Get(state) = %q, want %q", got, "second")
	}

	if err := repo.Delete(ctx, "state"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "state"); ok {
		t.Error("key still present after Delete")
	}
	if err := repo.Delete(ctx, "state"); err != nil {
		t.Errorf("Delete of missing key returned %v", err)
	}
}
