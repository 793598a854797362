package repository

import (
	"context"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/util"
	"errors"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

// FindWithoutScore 获取还没有提交成绩的用户（仍在游戏中）
func (r *UserRepository) FindWithoutScore(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Model(&model.User{}).
		Joins("LEFT JOIN scores ON scores.user_id = users.id").
		Where("scores.id IS NULL").
		Order("users.created_at ASC").
		Find(&users).Error
	return users, err
}
