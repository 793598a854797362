package service_test

import (
	"context"
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/service"
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

func newScoreService(t *testing.T) (*service.ScoreService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewScoreService(repository.NewUserRepository(db), repository.NewScoreRepository(db)), db
}

func intPtr(v int) *int { return &v }

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateUser(t *testing.T) {
	svc, db := newScoreService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "  Alice ")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" || user.Name != "Alice" {
		t.Fatalf("user = %+v", user)
	}

	found, err := svc.UserRepo.FindByID(ctx, user.ID)
	if err != nil || found.Name != "Alice" {
		t.Fatalf("FindByID = %+v, %v", found, err)
	}
	if n := countRows(t, db, &model.User{}); n != 1 {
		t.Fatalf("users = %d, want 1", n)
	}
}

func TestCreateUserRejectsBlankName(t *testing.T) {
	svc, db := newScoreService(t)
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.CreateUser(context.Background(), name); !errors.Is(err, util.ErrValidation) {
			t.Fatalf("CreateUser(%q) err = %v, want ErrValidation", name, err)
		}
	}
	if n := countRows(t, db, &model.User{}); n != 0 {
		t.Fatalf("users = %d, want 0", n)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	svc, db := newScoreService(t)
	ctx := context.Background()
	user, _ := svc.CreateUser(ctx, "Alice")

	cases := []struct {
		name   string
		userID string
		value  *int
		want   error
	}{
		{"missing user id", "", intPtr(10), util.ErrValidation},
		{"missing score", user.ID, nil, util.ErrValidation},
		{"negative score", user.ID, intPtr(-1), util.ErrValidation},
		{"unknown user", "00000000-0000-0000-0000-000000000000", intPtr(10), util.ErrUserNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.SubmitScore(ctx, tc.userID, tc.value); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
	if n := countRows(t, db, &model.Score{}); n != 0 {
		t.Fatalf("scores = %d, want 0", n)
	}
}

func TestSubmitScoreOverwrites(t *testing.T) {
	svc, db := newScoreService(t)
	ctx := context.Background()
	user, _ := svc.CreateUser(ctx, "Alice")

	if v, err := svc.SubmitScore(ctx, user.ID, intPtr(90)); err != nil || v != 90 {
		t.Fatalf("first submit = %d, %v", v, err)
	}
	if v, err := svc.SubmitScore(ctx, user.ID, intPtr(200)); err != nil || v != 200 {
		t.Fatalf("second submit = %d, %v", v, err)
	}

	if n := countRows(t, db, &model.Score{}); n != 1 {
		t.Fatalf("scores = %d, want 1", n)
	}
	stored, err := svc.ScoreRepo.FindByUserID(ctx, user.ID)
	if err != nil || stored.Score != 200 {
		t.Fatalf("stored = %+v, %v", stored, err)
	}
}

func TestListScoresWithStatistics(t *testing.T) {
	svc, _ := newScoreService(t)
	ctx := context.Background()

	alice, _ := svc.CreateUser(ctx, "Alice")
	bob, _ := svc.CreateUser(ctx, "Bob")
	if _, err := svc.SubmitScore(ctx, alice.ID, intPtr(125)); err != nil {
		t.Fatal(err)
	}

	board, err := svc.ListScoresWithStatistics(ctx)
	if err != nil {
		t.Fatalf("ListScoresWithStatistics: %v", err)
	}

	if len(board.Scores) != 1 {
		t.Fatalf("scores = %+v", board.Scores)
	}
	entry := board.Scores[0]
	if entry.UserName != "Alice" || entry.Score != 125 || entry.FormattedTime != "2m 5s" || entry.CreatedAt == "" {
		t.Fatalf("entry = %+v", entry)
	}

	if len(board.UsersWithoutScore) != 1 || board.UsersWithoutScore[0].ID != bob.ID || board.UsersWithoutScore[0].Name != "Bob" {
		t.Fatalf("usersWithoutScore = %+v", board.UsersWithoutScore)
	}

	want := model.Statistics{
		TotalUsers:     2,
		TotalScores:    1,
		AverageScore:   125,
		BestScore:      125,
		WorstScore:     125,
		CompletionRate: 50,
	}
	if board.Statistics != want {
		t.Fatalf("statistics = %+v, want %+v", board.Statistics, want)
	}
}

func TestListScoresEmpty(t *testing.T) {
	svc, _ := newScoreService(t)
	board, err := svc.ListScoresWithStatistics(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if board.Scores == nil || board.UsersWithoutScore == nil {
		t.Fatal("empty lists should encode as [] not null")
	}
	if board.Statistics != (model.Statistics{}) {
		t.Fatalf("statistics = %+v, want zero", board.Statistics)
	}
}

func TestComputeStatistics(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		users  int64
		want   model.Statistics
	}{
		{"no users", nil, 0, model.Statistics{}},
		{"users without scores", nil, 3, model.Statistics{TotalUsers: 3}},
		{
			"rounds half up",
			[]int{1, 2}, 3,
			model.Statistics{TotalUsers: 3, TotalScores: 2, AverageScore: 2, BestScore: 1, WorstScore: 2, CompletionRate: 67},
		},
		{
			"min is best",
			[]int{300, 90, 200}, 3,
			model.Statistics{TotalUsers: 3, TotalScores: 3, AverageScore: 197, BestScore: 90, WorstScore: 300, CompletionRate: 100},
		},
		{
			"one third",
			[]int{10}, 3,
			model.Statistics{TotalUsers: 3, TotalScores: 1, AverageScore: 10, BestScore: 10, WorstScore: 10, CompletionRate: 33},
		},
	}
	for _, tc := range cases {
		if got := service.ComputeStatistics(tc.values, tc.users); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := service.FormatDuration(125); got != "2m 5s" {
		t.Fatalf("FormatDuration(125) = %q", got)
	}
}
