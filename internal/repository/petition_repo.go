package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"CineSync/internal/model"

	"gorm.io/gorm"
)

// PetitionFilter 请愿列表筛选条件
type PetitionFilter struct {
	Search string // 模糊匹配标题/说明/片名
	Status string // pending/approved/rejected
}

// RecentVoteRow 请愿详情页展示的近期投票（联 users 取用户名）
type RecentVoteRow struct {
	UserID    uint64
	Username  string
	CreatedAt time.Time
}

// PetitionRepository 请愿与投票仓储
type PetitionRepository interface {
	// ListPetitions 分页列表：票数降序、创建时间倒序
	ListPetitions(ctx context.Context, filter PetitionFilter, page, pageSize int) ([]*model.Petition, int64, error)
	CreatePetition(ctx context.Context, p *model.Petition) error
	GetPetitionByID(ctx context.Context, id uint64) (*model.Petition, error)

	// GetVote 用户在该请愿上的投票，未投返回 (nil, nil)
	GetVote(ctx context.Context, petitionID, userID uint64) (*model.PetitionVote, error)
	CreateVote(ctx context.Context, v *model.PetitionVote) error
	DeleteVote(ctx context.Context, petitionID, userID uint64) error
	// RefreshVotesCount 按实际投票数回写 votes_count，返回最新值
	RefreshVotesCount(ctx context.Context, petitionID uint64) (int64, error)
	// ListRecentVotes 近期投票，时间倒序
	ListRecentVotes(ctx context.Context, petitionID uint64, limit int) ([]*RecentVoteRow, error)
}

type petitionRepository struct {
	db *gorm.DB
}

// NewPetitionRepository 创建 PetitionRepository 实例
func NewPetitionRepository(db *gorm.DB) PetitionRepository {
	return &petitionRepository{db: db}
}

func (r *petitionRepository) ListPetitions(ctx context.Context, filter PetitionFilter, page, pageSize int) ([]*model.Petition, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	db := r.db.WithContext(ctx).Model(&model.Petition{})
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(movie_title) LIKE ?", term, term, term)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var petitions []*model.Petition
	if err := db.
		Order("votes_count DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&petitions).Error; err != nil {
		return nil, 0, err
	}
	return petitions, total, nil
}

func (r *petitionRepository) CreatePetition(ctx context.Context, p *model.Petition) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *petitionRepository) GetPetitionByID(ctx context.Context, id uint64) (*model.Petition, error) {
	var p model.Petition
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *petitionRepository) GetVote(ctx context.Context, petitionID, userID uint64) (*model.PetitionVote, error) {
	var v model.PetitionVote
	err := r.db.WithContext(ctx).
		Where("petition_id = ? AND user_id = ?", petitionID, userID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *petitionRepository) CreateVote(ctx context.Context, v *model.PetitionVote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *petitionRepository) DeleteVote(ctx context.Context, petitionID, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("petition_id = ? AND user_id = ?", petitionID, userID).
		Delete(&model.PetitionVote{}).Error
}

func (r *petitionRepository) RefreshVotesCount(ctx context.Context, petitionID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PetitionVote{}).
		Where("petition_id = ?", petitionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Petition{}).
		Where("id = ?", petitionID).
		Update("votes_count", count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *petitionRepository) ListRecentVotes(ctx context.Context, petitionID uint64, limit int) ([]*RecentVoteRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []*RecentVoteRow
	if err := r.db.WithContext(ctx).Model(&model.PetitionVote{}).
		Select("petition_votes.user_id, users.username, petition_votes.created_at").
		Joins("JOIN users ON users.id = petition_votes.user_id").
		Where("petition_votes.petition_id = ?", petitionID).
		Order("petition_votes.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
