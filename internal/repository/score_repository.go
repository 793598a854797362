package repository

import (
	"context"
	"dark_patterns_game/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// Upsert creates the user's score or overwrites its value in one statement.
// The original creation time is kept on overwrite.
func (r *ScoreRepository) Upsert(ctx context.Context, userID string, value int) (*model.Score, error) {
	now := time.Now()
	score := &model.Score{
		UUIDBase: model.UUIDBase{
			ID:        model.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: userID,
		Score:  value,
	}

	err := r.DB.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      value,
			"updated_at": now,
		}),
	}).Create(score).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

func (r *ScoreRepository) FindByUserID(ctx context.Context, userID string) (*model.Score, error) {
	var score model.Score
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ListWithUsers 获取所有成绩及其用户，按创建时间倒序
func (r *ScoreRepository) ListWithUsers(ctx context.Context) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.WithContext(ctx).
		Joins("User").
		Order("scores.created_at DESC").
		Find(&scores).Error
	return scores, err
}
