package service

import (
	"context"
	"errors"
	"fmt"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PetitionInput 创建请愿的入参
type PetitionInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	MovieTitle    string  `json:"movie_title"`
	MovieYear     *int    `json:"movie_year"`
	MovieDirector *string `json:"movie_director"`
	MovieGenre    *string `json:"movie_genre"`
}

// PetitionInfo 请愿条目
type PetitionInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MovieTitle  string `json:"movie_title"`
	Status      string `json:"status"`
	VotesCount  int64  `json:"votes_count"`
	IsActive    bool   `json:"is_active"`
	CreatedByID uint64 `json:"created_by_id"`
	CreatedAt   string `json:"created_at"`
}

// PetitionListResult 请愿分页列表
type PetitionListResult struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
	Items    []PetitionInfo `json:"items"`
}

// PetitionVoteInfo 详情页近期投票条目
type PetitionVoteInfo struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	VotedAt  string `json:"voted_at"`
}

// PetitionDetail 请愿详情
type PetitionDetail struct {
	Petition    PetitionInfo       `json:"petition"`
	UserVoted   bool               `json:"user_voted"`
	RecentVotes []PetitionVoteInfo `json:"recent_votes"`
}

// VoteResult 投票/撤票结果
type VoteResult struct {
	Action     string `json:"action"` // voted / unvoted
	VotesCount int64  `json:"votes_count"`
}

// PetitionService 新片请愿与社区投票
type PetitionService struct {
	petitions repository.PetitionRepository
	logger    *logrus.Logger
}

// NewPetitionService 创建 PetitionService
func NewPetitionService(petitions repository.PetitionRepository, logger *logrus.Logger) *PetitionService {
	return &PetitionService{petitions: petitions, logger: logger}
}

func petitionInfo(p *model.Petition) PetitionInfo {
	return PetitionInfo{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		MovieTitle:  p.MovieTitle,
		Status:      p.Status,
		VotesCount:  p.VotesCount,
		IsActive:    p.IsActive(),
		CreatedByID: p.CreatedByID,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ListPetitions 分页列表：票数降序、创建时间倒序
func (s *PetitionService) ListPetitions(ctx context.Context, filter repository.PetitionFilter, page, pageSize int) (*PetitionListResult, error) {
	petitions, total, err := s.petitions.ListPetitions(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	result := &PetitionListResult{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    make([]PetitionInfo, 0, len(petitions)),
	}
	for _, p := range petitions {
		result.Items = append(result.Items, petitionInfo(p))
	}
	return result, nil
}

// CreatePetition 发起请愿。同一用户对同一片名重复发起按参数错误处理
func (s *PetitionService) CreatePetition(ctx context.Context, userID uint64, input *PetitionInput) (*PetitionInfo, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if input.Title == "" || input.Description == "" || input.MovieTitle == "" {
		return nil, fmt.Errorf("%w: title, description and movie_title are required", ErrInvalidArgument)
	}

	p := &model.Petition{
		Title:         input.Title,
		Description:   input.Description,
		MovieTitle:    input.MovieTitle,
		MovieYear:     input.MovieYear,
		MovieDirector: input.MovieDirector,
		MovieGenre:    input.MovieGenre,
		CreatedByID:   userID,
		Status:        model.PetitionStatusPending,
	}
	if err := s.petitions.CreatePetition(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already created a petition for this movie", ErrInvalidArgument)
		}
		return nil, err
	}
	info := petitionInfo(p)
	return &info, nil
}

// GetPetitionDetail 请愿详情：含当前用户是否已投票与近期投票
func (s *PetitionService) GetPetitionDetail(ctx context.Context, petitionID, userID uint64) (*PetitionDetail, error) {
	p, err := s.getPetition(ctx, petitionID)
	if err != nil {
		return nil, err
	}

	userVoted := false
	if userID != 0 {
		vote, err := s.petitions.GetVote(ctx, petitionID, userID)
		if err != nil {
			return nil, err
		}
		userVoted = vote != nil
	}

	recent, err := s.petitions.ListRecentVotes(ctx, petitionID, 10)
	if err != nil {
		return nil, err
	}
	votes := make([]PetitionVoteInfo, 0, len(recent))
	for _, v := range recent {
		votes = append(votes, PetitionVoteInfo{
			UserID:   v.UserID,
			Username: v.Username,
			VotedAt:  v.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return &PetitionDetail{
		Petition:    petitionInfo(p),
		UserVoted:   userVoted,
		RecentVotes: votes,
	}, nil
}

// Vote 投票开关：未投则投，已投则撤，票数按实际投票回写。
// 并发重复首投踩到唯一键冲突时按"已投"吸收，不向上抛错
func (s *PetitionService) Vote(ctx context.Context, petitionID, userID uint64) (*VoteResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	p, err := s.getPetition(ctx, petitionID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, fmt.Errorf("%w: this petition is no longer active", ErrInvalidArgument)
	}

	existing, err := s.petitions.GetVote(ctx, petitionID, userID)
	if err != nil {
		return nil, err
	}

	action := "voted"
	if existing != nil {
		if err := s.petitions.DeleteVote(ctx, petitionID, userID); err != nil {
			return nil, err
		}
		action = "unvoted"
	} else {
		err := s.petitions.CreateVote(ctx, &model.PetitionVote{
			PetitionID: petitionID,
			UserID:     userID,
		})
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	count, err := s.petitions.RefreshVotesCount(ctx, petitionID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Action: action, VotesCount: count}, nil
}

func (s *PetitionService) getPetition(ctx context.Context, petitionID uint64) (*model.Petition, error) {
	p, err := s.petitions.GetPetitionByID(ctx, petitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrPetitionNotFound, petitionID)
		}
		return nil, err
	}
	return p, nil
}
