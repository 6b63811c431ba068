package repository

import (
	"context"
	"time"

	"CineSync/internal/model"

	"gorm.io/gorm"
)

// PurchaseRow 用户购买明细行（order_items 联 orders、movies），按下单时间升序
type PurchaseRow struct {
	MovieID    uint64
	Name       string
	Image      string
	Genre      string
	Rating     string
	MoviePrice int64
	Quantity   int64
	Price      int64 // 成交单价（美元整数）
	CreatedAt  time.Time
}

// OrderRepository 订单持久化
type OrderRepository interface {
	// CreateOrderWithItems 订单与行项目同一事务落库
	CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	// ListPurchasesByUser 用户全部购买明细，供个人汇总聚合
	ListPurchasesByUser(ctx context.Context, userID uint64) ([]*PurchaseRow, error)
	// GetByUUID 按确认号查订单
	GetByUUID(ctx context.Context, orderUUID string) (*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepository) ListPurchasesByUser(ctx context.Context, userID uint64) ([]*PurchaseRow, error) {
	var rows []*PurchaseRow
	if err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("order_items.movie_id, movies.name, movies.image, movies.genre, movies.rating, movies.price AS movie_price, order_items.quantity, order_items.price, orders.created_at").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN movies ON movies.id = order_items.movie_id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at ASC, order_items.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderRepository) GetByUUID(ctx context.Context, orderUUID string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("order_uuid = ?", orderUUID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
