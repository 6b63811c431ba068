package model

import "time"

// Order 对应 orders 表，一次结算生成一条订单
type Order struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	OrderUUID string    `gorm:"column:order_uuid;type:varchar(64);uniqueIndex;not null;comment:订单确认号"`
	UserID    uint64    `gorm:"column:user_id;type:bigint;not null;index;comment:下单用户ID"`
	Total     int64     `gorm:"column:total;type:bigint;not null;comment:订单总额（美元整数）"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;comment:下单时间"`
}

// OrderItem 订单行项目，价格锁定下单当时的售价
type OrderItem struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	OrderID  uint64 `gorm:"column:order_id;type:bigint;not null;index;comment:关联订单ID"`
	MovieID  uint64 `gorm:"column:movie_id;type:bigint;not null;comment:关联电影ID"`
	Price    int64  `gorm:"column:price;type:bigint;not null;comment:成交单价（美元整数）"`
	Quantity int64  `gorm:"column:quantity;type:bigint;not null;comment:数量"`
}

func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
