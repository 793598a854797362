package service

import (
	"context"
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/util"
	"dark_patterns_game/pkg/monitoring"
	"fmt"
	"math"
	"strings"
	"time"
)

// ScoreService 处理注册、成绩提交和排行榜统计
type ScoreService struct {
	UserRepo  *repository.UserRepository
	ScoreRepo *repository.ScoreRepository
}

func NewScoreService(userRepo *repository.UserRepository, scoreRepo *repository.ScoreRepository) *ScoreService {
	return &ScoreService{
		UserRepo:  userRepo,
		ScoreRepo: scoreRepo,
	}
}

// CreateUser registers a participant under a display name.
func (s *ScoreService) CreateUser(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrValidation)
	}

	user := &model.User{Name: name}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	monitoring.UsersRegistered.Inc()
	return user, nil
}

// SubmitScore stores value as the user's score, replacing any previous one.
func (s *ScoreService) SubmitScore(ctx context.Context, userID string, value *int) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || value == nil {
		return 0, fmt.Errorf("%w: userId and score are required", util.ErrValidation)
	}
	if *value < 0 {
		return 0, fmt.Errorf("%w: score must not be negative", util.ErrValidation)
	}

	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return 0, err
	}

	score, err := s.ScoreRepo.Upsert(ctx, userID, *value)
	if err != nil {
		return 0, fmt.Errorf("upsert score: %w", err)
	}
	monitoring.ScoresSubmitted.Inc()
	return score.Score, nil
}

// ListScoresWithStatistics builds the dashboard payload.
func (s *ScoreService) ListScoresWithStatistics(ctx context.Context) (*model.ScoreBoard, error) {
	scores, err := s.ScoreRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	totalUsers, err := s.UserRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	pending, err := s.UserRepo.FindWithoutScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users without score: %w", err)
	}

	board := &model.ScoreBoard{
		Scores:            make([]model.ScoreEntry, 0, len(scores)),
		UsersWithoutScore: make([]model.PendingUser, 0, len(pending)),
	}

	values := make([]int, 0, len(scores))
	for _, sc := range scores {
		board.Scores = append(board.Scores, model.ScoreEntry{
			ID:            sc.ID,
			UserName:      sc.User.Name,
			Score:         sc.Score,
			CreatedAt:     sc.CreatedAt.UTC().Format(time.RFC3339Nano),
			FormattedTime: FormatDuration(sc.Score),
		})
		values = append(values, sc.Score)
	}
	for _, u := range pending {
		board.UsersWithoutScore = append(board.UsersWithoutScore, model.PendingUser{ID: u.ID, Name: u.Name})
	}

	board.Statistics = ComputeStatistics(values, totalUsers)
	return board, nil
}

// ComputeStatistics derives the dashboard numbers from the score values.
func ComputeStatistics(values []int, totalUsers int64) model.Statistics {
	st := model.Statistics{
		TotalUsers:  totalUsers,
		TotalScores: int64(len(values)),
	}
	if len(values) > 0 {
		sum := 0
		st.BestScore, st.WorstScore = values[0], values[0]
		for _, v := range values {
			sum += v
			if v < st.BestScore {
				st.BestScore = v
			}
			if v > st.WorstScore {
				st.WorstScore = v
			}
		}
		st.AverageScore = roundHalfUp(float64(sum) / float64(len(values)))
	}
	if totalUsers > 0 {
		st.CompletionRate = roundHalfUp(100 * float64(len(values)) / float64(totalUsers))
	}
	return st
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// FormatDuration renders whole seconds as "{m}m {s}s".
func FormatDuration(seconds int) string {
	return game.FormatElapsed(seconds)
}
