package kafka

import "time"

const (
	TopicMediaCleanup  = "media.cleanup"
	TopicCommentEvents = "comment.events"
)

// MediaCleanupEvent 被替换的图片对象，由 worker 异步删除
type MediaCleanupEvent struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
	Reason string `json:"reason"`
}

// CommentAction 评论变更类型
type CommentAction string

const (
	CommentUpserted CommentAction = "upsert"
	CommentDeleted  CommentAction = "delete"
)

// CommentEvent 评论变更消息，worker 据此同步搜索索引
type CommentEvent struct {
	Action    CommentAction `json:"action"`
	CommentID int64         `json:"commentId"`
	VideoID   int64         `json:"videoId"`
	OwnerID   int64         `json:"ownerId"`
	Content   string        `json:"content,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
