package model

import "time"

// Video 视频模型（本服务只读）
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_videos_owner_id;comment:上传者ID" json:"ownerId"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;comment:视频描述" json:"description"`
	VideoFile   string    `gorm:"size:500;not null;comment:视频地址" json:"videoFile"`
	Thumbnail   string    `gorm:"size:500;comment:缩略图地址" json:"thumbnail"`
	Duration    float64   `gorm:"default:0;comment:时长（秒）" json:"duration"`
	Views       int64     `gorm:"default:0;comment:播放量" json:"views"`
	IsPublished bool      `gorm:"default:true;comment:是否发布" json:"isPublished"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
