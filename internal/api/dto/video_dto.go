package dto

import "time"

// OwnerBrief 嵌套的作者简要信息
type OwnerBrief struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// WatchHistoryItem 观看历史中的视频
type WatchHistoryItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoFile   string     `json:"videoFile"`
	Thumbnail   string     `json:"thumbnail"`
	Duration    float64    `json:"duration"`
	Views       int64      `json:"views"`
	WatchedAt   time.Time  `json:"watchedAt"`
	Owner       OwnerBrief `json:"owner"`
}
