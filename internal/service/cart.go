package service

import (
	"context"
	"errors"
	"fmt"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartItemInput 结算请求中的一行
type CartItemInput struct {
	MovieID  uint64 `json:"movie_id"`
	Quantity int64  `json:"quantity"`
}

// PurchaseResult 结算结果
type PurchaseResult struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}

// CartService 结算服务：生成订单与行项目，并把每部电影的购买记入用户所在州的热度
type CartService struct {
	movies   repository.MovieRepository
	orders   repository.OrderRepository
	activity *ActivityService
	logger   *logrus.Logger
}

// NewCartService 创建 CartService
func NewCartService(movies repository.MovieRepository, orders repository.OrderRepository, activity *ActivityService, logger *logrus.Logger) *CartService {
	return &CartService{
		movies:   movies,
		orders:   orders,
		activity: activity,
		logger:   logger,
	}
}

// Purchase 结算购物车。先全量校验（任何一部电影缺失则什么都不写），
// 订单落库后再记热度；热度记录失败只告警，不回滚订单
func (s *CartService) Purchase(ctx context.Context, userID uint64, items []CartItemInput) (*PurchaseResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidArgument)
	}

	var total int64
	orderItems := make([]*model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
		}
		movie, err := s.movies.GetByID(ctx, item.MovieID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrMovieNotFound, item.MovieID)
			}
			return nil, err
		}
		total += movie.Price * item.Quantity
		orderItems = append(orderItems, &model.OrderItem{
			MovieID:  movie.ID,
			Price:    movie.Price,
			Quantity: item.Quantity,
		})
	}

	order := &model.Order{
		OrderUUID: uuid.New().String(),
		UserID:    userID,
		Total:     total,
	}
	if err := s.orders.CreateOrderWithItems(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	for _, item := range orderItems {
		if err := s.activity.RecordPurchase(ctx, item.MovieID, userID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"order_uuid": order.OrderUUID,
				"movie_id":   item.MovieID,
			}).Warn("记录购买热度失败，订单不受影响")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"order_uuid": order.OrderUUID,
		"user_id":    userID,
		"total":      total,
	}).Info("订单创建成功")
	return &PurchaseResult{OrderID: order.OrderUUID, Total: total}, nil
}
