package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService 热度事件写入端：结算流程与电影详情页在购买/浏览发生时调用。
// 副作用只落在 movie_popularity 计数与 activity_events 流水，不触碰其他实体
type ActivityService struct {
	movies   repository.MovieRepository
	ledger   repository.PopularityRepository
	resolver *RegionResolver
	logger   *logrus.Logger
}

// NewActivityService 创建 ActivityService
func NewActivityService(movies repository.MovieRepository, ledger repository.PopularityRepository, resolver *RegionResolver, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		movies:   movies,
		ledger:   ledger,
		resolver: resolver,
		logger:   logger,
	}
}

// RecordPurchase 记录一次购买：先校验电影存在（不存在则整体不写），再解析州。
// 解析不到州时静默跳过——缺少地区档案不能让结算流程失败
func (s *ActivityService) RecordPurchase(ctx context.Context, movieID, userID uint64, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return err
	}

	state := s.resolver.Resolve(ctx, userID)
	if state == nil {
		s.logger.WithField("movie_id", movieID).Debug("无法解析用户所在州，跳过购买热度记录")
		return nil
	}

	if _, err := s.ledger.UpsertAndIncrement(ctx, movieID, state.ID, quantity, 0); err != nil {
		return fmt.Errorf("累加购买计数失败 movie_id=%d state_id=%d: %w", movieID, state.ID, err)
	}
	s.appendEvent(ctx, "purchase", movieID, state.ID, userID, quantity)
	return nil
}

// RecordView 记录一次浏览。匿名访客直接跳过：州解析依赖用户档案，
// 未识别的用户不计入热度
func (s *ActivityService) RecordView(ctx context.Context, movieID, userID uint64) error {
	if userID == 0 {
		return nil
	}
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return err
	}

	state := s.resolver.Resolve(ctx, userID)
	if state == nil {
		return nil
	}

	if _, err := s.ledger.UpsertAndIncrement(ctx, movieID, state.ID, 0, 1); err != nil {
		return fmt.Errorf("累加浏览计数失败 movie_id=%d state_id=%d: %w", movieID, state.ID, err)
	}
	s.appendEvent(ctx, "view", movieID, state.ID, userID, 1)
	return nil
}

func (s *ActivityService) ensureMovie(ctx context.Context, movieID uint64) error {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id=%d", ErrMovieNotFound, movieID)
		}
		return err
	}
	return nil
}

// appendEvent 追加事件流水。流水只用于排查，写失败降级为告警，不影响计数结果
func (s *ActivityService) appendEvent(ctx context.Context, eventType string, movieID, stateID, userID uint64, quantity int64) {
	payload, _ := json.Marshal(map[string]interface{}{
		"event_type": eventType,
		"movie_id":   movieID,
		"state_id":   stateID,
		"user_id":    userID,
		"quantity":   quantity,
	})
	ev := &model.ActivityEvent{
		EventType: eventType,
		MovieID:   movieID,
		StateID:   stateID,
		UserID:    userID,
		Quantity:  quantity,
		EventData: datatypes.JSON(payload),
	}
	if err := s.ledger.AppendEvent(ctx, ev); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": eventType,
			"movie_id":   movieID,
		}).Warn("写入热度事件流水失败")
	}
}
