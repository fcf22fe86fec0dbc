package dto

import "time"

// CommentContentRequest 发表 / 编辑评论请求
type CommentContentRequest struct {
	Content string `json:"content" binding:"notblank,max=5000"`
}

// PageQuery 分页参数，缺省 page=1 limit=10
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// CommentOwner 评论作者
type CommentOwner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// CommentInfo 列表中的评论，含点赞聚合
type CommentInfo struct {
	ID         int64        `json:"id"`
	Content    string       `json:"content"`
	Video      int64        `json:"video"`
	Owner      CommentOwner `json:"owner"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CommentListData 分页评论列表
type CommentListData struct {
	Comments      []CommentInfo `json:"comments"`
	TotalComments int64         `json:"totalComments"`
	Limit         int           `json:"limit"`
	Page          int           `json:"page"`
	TotalPages    int           `json:"totalPages"`
	HasPrevPage   bool          `json:"hasPrevPage"`
	HasNextPage   bool          `json:"hasNextPage"`
	PrevPage      *int          `json:"prevPage"`
	NextPage      *int          `json:"nextPage"`
}

// CommentData 新建 / 编辑后的评论
type CommentData struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Video     int64     `json:"video"`
	Owner     int64     `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeletedComment 删除结果
type DeletedComment struct {
	CommentID int64 `json:"commentId"`
}
