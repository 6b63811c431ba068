package model

import "time"

// User 站内用户，认证/会话不在本服务范围，接口通过 user_id 参数识别身份
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Username  string    `gorm:"column:username;type:varchar(150);uniqueIndex;not null;comment:用户名"`
	Email     string    `gorm:"column:email;type:varchar(254);comment:邮箱"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

// UserProfile 用户扩展档案，一对一关联至多一个州；StateID 可空
type UserProfile struct {
	ID      uint64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UserID  uint64  `gorm:"column:user_id;type:bigint;uniqueIndex;not null;comment:关联用户ID"`
	StateID *uint64 `gorm:"column:state_id;type:bigint;comment:所在州ID，可空"`
}

func (User) TableName() string        { return "users" }
func (UserProfile) TableName() string { return "user_profiles" }
