package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TrendingService 读取端：单州/全国排行、两州对比、个人购买与地区对比
type TrendingService struct {
	states   repository.StateRepository
	ledger   repository.PopularityRepository
	movies   repository.MovieRepository
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	resolver *RegionResolver
	logger   *logrus.Logger
}

// NewTrendingService 创建 TrendingService
func NewTrendingService(
	states repository.StateRepository,
	ledger repository.PopularityRepository,
	movies repository.MovieRepository,
	orders repository.OrderRepository,
	profiles repository.ProfileRepository,
	resolver *RegionResolver,
	logger *logrus.Logger,
) *TrendingService {
	return &TrendingService{
		states:   states,
		ledger:   ledger,
		movies:   movies,
		orders:   orders,
		profiles: profiles,
		resolver: resolver,
		logger:   logger,
	}
}

// StateInfo 州基础信息（含地图中心坐标）
type StateInfo struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
}

// StateMovieEntry 单州排行条目
type StateMovieEntry struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	PurchaseCount int64   `json:"purchase_count"`
	ViewCount     int64   `json:"view_count"`
	TotalActivity float64 `json:"total_activity"`
	ImageURL      string  `json:"image_url"`
	Price         int64   `json:"price"`
	Genre         string  `json:"genre"`
	Rating        string  `json:"rating"`
}

// GlobalMovieEntry 全国排行条目
type GlobalMovieEntry struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	TotalPurchases int64  `json:"total_purchases"`
	TotalViews     int64  `json:"total_views"`
	StateCount     int64  `json:"state_count"`
	ImageURL       string `json:"image_url"`
	Price          int64  `json:"price"`
	Genre          string `json:"genre"`
	Rating         string `json:"rating"`
}

// PersonalPurchaseEntry 个人购买汇总条目（按电影聚合）
type PersonalPurchaseEntry struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	TotalQuantity int64    `json:"total_quantity"`
	TotalSpent    int64    `json:"total_spent"`
	PurchaseDates []string `json:"purchase_dates"`
	ImageURL      string   `json:"image_url"`
	Price         int64    `json:"price"`
	Genre         string   `json:"genre"`
	Rating        string   `json:"rating"`
}

// StateTrending 某州的排行结果
type StateTrending struct {
	State  StateInfo         `json:"state"`
	Movies []StateMovieEntry `json:"movies"`
}

// CompareResult 两州对比结果，任一侧失败则整体失败
type CompareResult struct {
	State1 *StateTrending `json:"state1"`
	State2 *StateTrending `json:"state2"`
}

// PersonalVsStateResult 个人购买汇总与所在州排行的对照
type PersonalVsStateResult struct {
	Personal []PersonalPurchaseEntry `json:"personal"`
	State    *StateInfo              `json:"state"`
	Movies   []StateMovieEntry       `json:"state_movies"`
}

// UserPurchasesEntry 其他用户的购买摘要
type UserPurchasesEntry struct {
	UserID    uint64                  `json:"user_id"`
	Username  string                  `json:"username"`
	Purchases []PersonalPurchaseEntry `json:"purchases"`
}

func stateInfo(s *model.State) StateInfo {
	return StateInfo{
		ID:           s.ID,
		Name:         s.Name,
		Abbreviation: s.Abbreviation,
		CenterLat:    s.CenterLat,
		CenterLng:    s.CenterLng,
	}
}

func imageURL(image string) string {
	if image == "" {
		return ""
	}
	return "/media/movie_images/" + image
}

// ListStates 全部州，按州名升序
func (s *TrendingService) ListStates(ctx context.Context) ([]StateInfo, error) {
	states, err := s.states.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]StateInfo, 0, len(states))
	for _, st := range states {
		result = append(result, stateInfo(st))
	}
	return result, nil
}

// TrendingForState 单州热门电影排行
func (s *TrendingService) TrendingForState(ctx context.Context, stateID uint64, limit int) (*StateTrending, error) {
	state, err := s.states.GetStateByID(ctx, stateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrStateNotFound, stateID)
		}
		return nil, err
	}
	return s.trendingFor(ctx, state, limit)
}

func (s *TrendingService) trendingFor(ctx context.Context, state *model.State, limit int) (*StateTrending, error) {
	rows, err := s.ledger.TopForState(ctx, state.ID, limit)
	if err != nil {
		return nil, err
	}
	movies := make([]StateMovieEntry, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, StateMovieEntry{
			ID:            row.MovieID,
			Name:          row.Name,
			PurchaseCount: row.PurchaseCount,
			ViewCount:     row.ViewCount,
			TotalActivity: row.TotalActivity(),
			ImageURL:      imageURL(row.Image),
			Price:         row.Price,
			Genre:         row.Genre,
			Rating:        row.Rating,
		})
	}
	return &StateTrending{State: stateInfo(state), Movies: movies}, nil
}

// GlobalTrending 全国排行：跨州求和后补齐电影展示属性
func (s *TrendingService) GlobalTrending(ctx context.Context, limit int) ([]GlobalMovieEntry, error) {
	rows, err := s.ledger.AggregateAcrossStates(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MovieID)
	}
	movieByID, err := s.movies.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]GlobalMovieEntry, 0, len(rows))
	for _, row := range rows {
		movie, ok := movieByID[row.MovieID]
		if !ok {
			// 目录与计数不一致（电影被删），跳过该条
			s.logger.WithField("movie_id", row.MovieID).Warn("热度计数引用的电影不存在")
			continue
		}
		result = append(result, GlobalMovieEntry{
			ID:             movie.ID,
			Name:           movie.Name,
			TotalPurchases: row.TotalPurchases,
			TotalViews:     row.TotalViews,
			StateCount:     row.StateCount,
			ImageURL:       movie.ImageURL(),
			Price:          movie.Price,
			Genre:          movie.Genre,
			Rating:         movie.Rating,
		})
	}
	return result, nil
}

// CompareStates 两州并排对比，任一州不存在则整体失败并指明出错侧
func (s *TrendingService) CompareStates(ctx context.Context, stateID1, stateID2 uint64, limit int) (*CompareResult, error) {
	state1, err := s.states.GetStateByID(ctx, stateID1)
	if err != nil {
		return nil, s.sideErr(1, stateID1, err)
	}
	state2, err := s.states.GetStateByID(ctx, stateID2)
	if err != nil {
		return nil, s.sideErr(2, stateID2, err)
	}

	trending1, err := s.trendingFor(ctx, state1, limit)
	if err != nil {
		return nil, err
	}
	trending2, err := s.trendingFor(ctx, state2, limit)
	if err != nil {
		return nil, err
	}
	return &CompareResult{State1: trending1, State2: trending2}, nil
}

func (s *TrendingService) sideErr(side int, stateID uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SideError{Side: side, Err: ErrStateNotFound}
	}
	return fmt.Errorf("查询州失败 id=%d: %w", stateID, err)
}

// PersonalSummary 用户购买历史按电影聚合：总数量、总花费、购买日期列表，
// 按总数量降序（movie_id 升序保证确定性）
func (s *TrendingService) PersonalSummary(ctx context.Context, userID uint64, limit int) ([]PersonalPurchaseEntry, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	rows, err := s.orders.ListPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMovie := make(map[uint64]*PersonalPurchaseEntry)
	order := make([]uint64, 0)
	for _, row := range rows {
		entry, ok := byMovie[row.MovieID]
		if !ok {
			entry = &PersonalPurchaseEntry{
				ID:       row.MovieID,
				Name:     row.Name,
				ImageURL: imageURL(row.Image),
				Price:    row.MoviePrice,
				Genre:    row.Genre,
				Rating:   row.Rating,
			}
			byMovie[row.MovieID] = entry
			order = append(order, row.MovieID)
		}
		entry.TotalQuantity += row.Quantity
		entry.TotalSpent += row.Price * row.Quantity
		entry.PurchaseDates = append(entry.PurchaseDates, row.CreatedAt.Format("2006-01-02"))
	}

	result := make([]PersonalPurchaseEntry, 0, len(order))
	for _, id := range order {
		result = append(result, *byMovie[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalQuantity != result[j].TotalQuantity {
			return result[i].TotalQuantity > result[j].TotalQuantity
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// PersonalVsState 个人购买汇总对照所在州排行。所在州走与 Recorder 相同的兜底链，
// 链走完仍无州时返回空排行而不报错
func (s *TrendingService) PersonalVsState(ctx context.Context, userID uint64, limit int) (*PersonalVsStateResult, error) {
	personal, err := s.PersonalSummary(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	result := &PersonalVsStateResult{
		Personal: personal,
		Movies:   []StateMovieEntry{},
	}
	state := s.resolver.Resolve(ctx, userID)
	if state == nil {
		return result, nil
	}
	trending, err := s.trendingFor(ctx, state, limit)
	if err != nil {
		return nil, err
	}
	info := trending.State
	result.State = &info
	result.Movies = trending.Movies
	return result, nil
}

// OtherUsers 其他用户的购买摘要。stateID 为 nil 时不限州；
// 用户顺序保持档案数据源的返回顺序，无购买记录的用户不出现在结果里
func (s *TrendingService) OtherUsers(ctx context.Context, stateID *uint64, excludeUserID uint64, userLimit, perUserLimit int) ([]UserPurchasesEntry, error) {
	if excludeUserID == 0 {
		return nil, ErrUnauthorized
	}
	if stateID != nil {
		if _, err := s.states.GetStateByID(ctx, *stateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrStateNotFound, *stateID)
			}
			return nil, err
		}
	}
	if userLimit <= 0 {
		userLimit = 15
	}
	if perUserLimit <= 0 {
		perUserLimit = 5
	}

	users, err := s.profiles.ListUsers(ctx, stateID, excludeUserID)
	if err != nil {
		return nil, err
	}

	result := make([]UserPurchasesEntry, 0, userLimit)
	for _, u := range users {
		if len(result) >= userLimit {
			break
		}
		purchases, err := s.PersonalSummary(ctx, u.ID, perUserLimit)
		if err != nil {
			return nil, err
		}
		if len(purchases) == 0 {
			continue // 不输出空购买列表
		}
		result = append(result, UserPurchasesEntry{
			UserID:    u.ID,
			Username:  u.Username,
			Purchases: purchases,
		})
	}
	return result, nil
}

// ResetPopularity 管理端清空全部热度计数，仅允许显式触发
func (s *TrendingService) ResetPopularity(ctx context.Context) error {
	if err := s.ledger.ResetAll(ctx); err != nil {
		return err
	}
	s.logger.Warn("热度计数已整表清零")
	return nil
}
