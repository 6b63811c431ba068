package repository

import (
	"context"
	"errors"

	"CineSync/internal/model"

	"gorm.io/gorm"
)

// StateRepository 州参考数据仓储，运行期只读
type StateRepository interface {
	// ListStates 全部州，按州名升序
	ListStates(ctx context.Context) ([]*model.State, error)
	// GetStateByID 按ID查州
	GetStateByID(ctx context.Context, id uint64) (*model.State, error)
	// GetStateByName 按州名查州
	GetStateByName(ctx context.Context, name string) (*model.State, error)
	// FirstState ID最小的州（兜底解析用），无任何州时返回 (nil, nil)
	FirstState(ctx context.Context) (*model.State, error)
}

type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository 创建 StateRepository 实例
func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) ListStates(ctx context.Context) ([]*model.State, error) {
	var states []*model.State
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (r *stateRepository) GetStateByID(ctx context.Context, id uint64) (*model.State, error) {
	var s model.State
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stateRepository) GetStateByName(ctx context.Context, name string) (*model.State, error) {
	var s model.State
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stateRepository) FirstState(ctx context.Context) (*model.State, error) {
	var s model.State
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
