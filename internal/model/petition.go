package model

import "time"

// 请愿状态
const (
	PetitionStatusPending  = "pending"
	PetitionStatusApproved = "approved"
	PetitionStatusRejected = "rejected"
)

// PetitionLifetime 请愿有效期，超过后不再接受投票
const PetitionLifetime = 7 * 24 * time.Hour

// Petition 新片请愿，同一用户对同一片名只能发起一次
type Petition struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Title         string    `gorm:"column:title;type:varchar(255);not null;comment:请愿标题"`
	Description   string    `gorm:"column:description;type:text;not null;comment:请愿说明"`
	MovieTitle    string    `gorm:"column:movie_title;type:varchar(255);not null;uniqueIndex:uk_title_creator;comment:请求片名"`
	MovieYear     *int      `gorm:"column:movie_year;type:int;comment:上映年份，可空"`
	MovieDirector *string   `gorm:"column:movie_director;type:varchar(100);comment:导演，可空"`
	MovieGenre    *string   `gorm:"column:movie_genre;type:varchar(50);comment:类型，可空"`
	CreatedByID   uint64    `gorm:"column:created_by_id;type:bigint;not null;uniqueIndex:uk_title_creator;comment:发起用户ID"`
	Status        string    `gorm:"column:status;type:varchar(20);default:pending;comment:状态：pending/approved/rejected"`
	VotesCount    int64     `gorm:"column:votes_count;type:bigint;not null;default:0;comment:当前票数"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

// IsExpired 创建超过7天视为过期
func (p *Petition) IsExpired() bool {
	return time.Now().After(p.CreatedAt.Add(PetitionLifetime))
}

// IsActive 未过期且仍在 pending 状态才可投票
func (p *Petition) IsActive() bool {
	return !p.IsExpired() && p.Status == PetitionStatusPending
}

// PetitionVote 请愿投票，(petition_id, user_id) 唯一，一人一票
type PetitionVote struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PetitionID uint64    `gorm:"column:petition_id;type:bigint;not null;uniqueIndex:uk_petition_user;comment:关联请愿ID"`
	UserID     uint64    `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uk_petition_user;comment:投票用户ID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;comment:投票时间"`
}

func (Petition) TableName() string     { return "petitions" }
func (PetitionVote) TableName() string { return "petition_votes" }
