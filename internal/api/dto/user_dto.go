package dto

import "time"

// UpdateAccountRequest 账户信息更新请求
type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"notblank,max=255"`
	Email    string `json:"email" binding:"notblank,max=255"`
}

// UserInfo 用户公开信息（不含密码与 refresh token）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ChannelProfile 频道主页信息
type ChannelProfile struct {
	ID                        int64     `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
	CreatedAt                 time.Time `json:"createdAt"`
}
