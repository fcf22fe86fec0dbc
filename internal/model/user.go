package model

import "time"

// User 用户模型
type User struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username         string    `gorm:"size:255;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱（小写）" json:"email"`
	FullName         string    `gorm:"size:255;not null;index;comment:昵称" json:"fullName"`
	Avatar           string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	AvatarObject     string    `gorm:"size:500;comment:头像对象名" json:"-"`
	CoverImage       string    `gorm:"size:500;comment:主页封面地址" json:"coverImage"`
	CoverImageObject string    `gorm:"size:500;comment:封面对象名" json:"-"`
	Password         string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	RefreshToken     *string   `gorm:"type:text;comment:当前有效的 refresh token" json:"-"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
