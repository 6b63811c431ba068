package model

import (
	"time"

	"gorm.io/datatypes"
)

// State 美国州参考数据，坐标仅用于前端地图定位，不参与排名计算
type State struct {
	ID           uint64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name         string  `gorm:"column:name;type:varchar(50);uniqueIndex;not null;comment:州名"`
	Abbreviation string  `gorm:"column:abbreviation;type:varchar(2);uniqueIndex;not null;comment:两位缩写"`
	CenterLat    float64 `gorm:"column:center_lat;not null;comment:地图中心纬度"`
	CenterLng    float64 `gorm:"column:center_lng;not null;comment:地图中心经度"`
}

// MoviePopularity 电影在单个州的热度计数，(movie_id, state_id) 全局唯一
// 计数只增不减，唯一的清零途径是管理端的整表重置
type MoviePopularity struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MovieID       uint64    `gorm:"column:movie_id;type:bigint;not null;uniqueIndex:uk_movie_state;comment:关联电影ID"`
	StateID       uint64    `gorm:"column:state_id;type:bigint;not null;uniqueIndex:uk_movie_state;comment:关联州ID"`
	PurchaseCount int64     `gorm:"column:purchase_count;type:bigint;not null;default:0;comment:累计购买数"`
	ViewCount     int64     `gorm:"column:view_count;type:bigint;not null;default:0;comment:累计浏览数"`
	LastUpdated   time.Time `gorm:"column:last_updated;autoUpdateTime;comment:最近一次计数时间"`
}

// TotalActivity 综合热度分：浏览按购买的十分之一加权，读取时实时计算，不落库
func (p *MoviePopularity) TotalActivity() float64 {
	return float64(p.PurchaseCount) + float64(p.ViewCount)*0.1
}

// ActivityEvent 热度事件流水：每次购买/浏览各记一条，原始参数存 jsonb 方便排查
type ActivityEvent struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	EventType string         `gorm:"column:event_type;type:varchar(16);not null;comment:事件类型：purchase/view"`
	MovieID   uint64         `gorm:"column:movie_id;type:bigint;not null;index;comment:关联电影ID"`
	StateID   uint64         `gorm:"column:state_id;type:bigint;not null;comment:记入的州ID"`
	UserID    uint64         `gorm:"column:user_id;type:bigint;not null;comment:触发用户ID"`
	Quantity  int64          `gorm:"column:quantity;type:bigint;not null;default:1;comment:购买数量（浏览恒为1）"`
	EventData datatypes.JSON `gorm:"column:event_data;type:jsonb;comment:原始事件参数"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

func (State) TableName() string           { return "states" }
func (MoviePopularity) TableName() string { return "movie_popularity" }
func (ActivityEvent) TableName() string   { return "activity_events" }
