package repository_test

import (
	"context"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

func countScores(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Score{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count scores: %v", err)
	}
	return count
}

func TestScoreRepository_UpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "Carol")

	first, err := scores.Upsert(ctx, user.ID, 90)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	second, err := scores.Upsert(ctx, user.ID, 200)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if second.Score != 200 {
		t.Fatalf("score = %d, want 200", second.Score)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row to be updated, got ids %s and %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed on overwrite: %v -> %v", first.CreatedAt, second.CreatedAt)
	}

	if count := countScores(t, db, user.ID); count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestScoreRepository_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "Dave")

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if _, err := scores.Upsert(ctx, user.ID, v*10); err != nil {
				t.Errorf("Upsert(%d): %v", v, err)
			}
		}(i)
	}
	wg.Wait()

	if count := countScores(t, db, user.ID); count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestScoreRepository_ListWithUsersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "Alice")
	bob := createUser(t, users, "Bob")

	if _, err := scores.Upsert(ctx, alice.ID, 300); err != nil {
		t.Fatalf("Upsert alice: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := scores.Upsert(ctx, bob.ID, 150); err != nil {
		t.Fatalf("Upsert bob: %v", err)
	}

	list, err := scores.ListWithUsers(ctx)
	if err != nil {
		t.Fatalf("ListWithUsers: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].User.Name != "Bob" || list[1].User.Name != "Alice" {
		t.Fatalf("order = [%s %s], want [Bob Alice]", list[0].User.Name, list[1].User.Name)
	}
}
