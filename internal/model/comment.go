package model

import "time"

// Comment 评论模型
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id;index:idx_comments_video_created,priority:1;comment:被评论视频ID" json:"videoId"`
	OwnerID   int64     `gorm:"not null;index:idx_comments_owner_id;comment:评论用户ID" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2;comment:评论时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"-"`
	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
