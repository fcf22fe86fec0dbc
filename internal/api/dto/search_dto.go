package dto

// SearchCommentsQuery 评论搜索参数
type SearchCommentsQuery struct {
	Q       string `form:"q"`
	VideoID *int64 `form:"videoId"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

// CommentSearchData 评论搜索结果；Source 为 elasticsearch 或 database
type CommentSearchData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Source     string        `json:"source"`
}
