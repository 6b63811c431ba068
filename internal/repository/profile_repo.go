package repository

import (
	"context"
	"errors"

	"CineSync/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository 用户与州档案仓储（对热度子系统只读）
type ProfileRepository interface {
	// GetProfileByUserID 用户档案，未建档返回 (nil, nil)
	GetProfileByUserID(ctx context.Context, userID uint64) (*model.UserProfile, error)
	// GetUserByID 按ID查用户
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	// ListUsers 候选用户列表，排除 excludeUserID；stateID 非空时只取档案落在该州的用户。
	// 返回顺序即档案数据源的自然顺序（id 升序），调用方不得重排
	ListUsers(ctx context.Context, stateID *uint64, excludeUserID uint64) ([]*model.User, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建 ProfileRepository 实例
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *profileRepository) ListUsers(ctx context.Context, stateID *uint64, excludeUserID uint64) ([]*model.User, error) {
	db := r.db.WithContext(ctx).Model(&model.User{}).Where("users.id <> ?", excludeUserID)
	if stateID != nil {
		db = db.Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
			Where("user_profiles.state_id = ?", *stateID)
	}
	var users []*model.User
	if err := db.Order("users.id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
