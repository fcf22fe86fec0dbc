package model

import "time"

// WatchHistory 观看记录
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_watch_histories_user_watched,priority:1;comment:用户ID" json:"userId"`
	VideoID   int64     `gorm:"not null;comment:视频ID" json:"videoId"`
	WatchedAt time.Time `gorm:"autoCreateTime;index:idx_watch_histories_user_watched,priority:2;comment:观看时间" json:"watchedAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
