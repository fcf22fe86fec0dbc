package model

import "time"

// Like 点赞记录，comment_id / video_id 二选一
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	CommentID *int64    `gorm:"index:idx_likes_comment_id;comment:被点赞评论ID" json:"commentId"`
	VideoID   *int64    `gorm:"index:idx_likes_video_id;comment:被点赞视频ID" json:"videoId"`
	LikedBy   int64     `gorm:"not null;index:idx_likes_liked_by;comment:点赞用户ID" json:"likedBy"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
