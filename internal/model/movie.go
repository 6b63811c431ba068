package model

import "time"

// Movie 电影目录条目
type Movie struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;comment:电影名称"`
	Price       int64     `gorm:"column:price;type:bigint;not null;comment:售价（美元整数）"`
	Description string    `gorm:"column:description;type:text;comment:简介"`
	Image       string    `gorm:"column:image;type:varchar(255);comment:海报文件名"`
	ReleaseYear int       `gorm:"column:release_year;type:int;default:2000;comment:上映年份"`
	Director    string    `gorm:"column:director;type:varchar(100);default:Unknown;comment:导演"`
	Genre       string    `gorm:"column:genre;type:varchar(50);default:Action;comment:类型"`
	Rating      string    `gorm:"column:rating;type:varchar(10);default:PG;comment:分级"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

// ImageURL 海报访问路径，未上传时为空串
func (m *Movie) ImageURL() string {
	if m.Image == "" {
		return ""
	}
	return "/media/movie_images/" + m.Image
}

// Review 影评，被举报后从展示列表隐藏
type Review struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Comment    string    `gorm:"column:comment;type:varchar(255);not null;comment:评论内容"`
	MovieID    uint64    `gorm:"column:movie_id;type:bigint;not null;index;comment:关联电影ID"`
	UserID     uint64    `gorm:"column:user_id;type:bigint;not null;comment:作者用户ID"`
	IsReported bool      `gorm:"column:is_reported;type:boolean;default:false;comment:是否被举报"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

// Rating 用户对电影的评分，(user_id, movie_id) 唯一，重复提交则覆盖
type Rating struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MovieID   uint64    `gorm:"column:movie_id;type:bigint;not null;uniqueIndex:uk_user_movie;comment:关联电影ID"`
	UserID    uint64    `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uk_user_movie;comment:评分用户ID"`
	Rating    int       `gorm:"column:rating;type:int;not null;comment:评分1-5"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime;comment:更新时间"`
}

func (Movie) TableName() string  { return "movies" }
func (Review) TableName() string { return "reviews" }
func (Rating) TableName() string { return "ratings" }
