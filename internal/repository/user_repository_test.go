package repository_test

import (
	"context"
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/util"
	"dark_patterns_game/pkg/database"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *repository.UserRepository, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create(%q): %v", name, err)
	}
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := createUser(t, repo, "Alice")
	if user.ID == "" {
		t.Fatal("expected ID to be generated")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "Alice" {
		t.Fatalf("name = %q, want Alice", found.Name)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CountAndWithoutScore(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "Alice")
	createUser(t, users, "Bob")

	if _, err := scores.Upsert(ctx, alice.ID, 125); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	count, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	pending, err := users.FindWithoutScore(ctx)
	if err != nil {
		t.Fatalf("FindWithoutScore: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "Bob" {
		t.Fatalf("pending = %+v, want only Bob", pending)
	}
}
