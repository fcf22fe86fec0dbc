package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	sourceElasticsearch = "elasticsearch"
	sourceDatabase      = "database"
)

// Search 搜索评论（ES 优先，失败则降级到 DB）
func (s *CommentService) Search(ctx context.Context, viewerID int64, req *dto.SearchCommentsQuery) (*dto.CommentSearchData, error) {
	q := strings.TrimSpace(req.Q)
	if q == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	page, limit := normalizePage(req.Page, req.Limit)
	offset := (page - 1) * limit

	if s.searcher != nil {
		data, err := s.searchFromES(ctx, q, req.VideoID, viewerID, offset, limit)
		if err == nil {
			return finishSearch(data, page, limit), nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.String("q", q), zap.Error(err))
	}

	rows, total, err := s.comments.SearchByContent(ctx, q, req.VideoID, viewerID, offset, limit)
	if err != nil {
		return nil, err
	}
	data := &dto.CommentSearchData{
		Comments: toCommentInfos(rows),
		Total:    total,
		Source:   sourceDatabase,
	}
	return finishSearch(data, page, limit), nil
}

func (s *CommentService) searchFromES(ctx context.Context, q string, videoID *int64, viewerID int64, offset, limit int) (*dto.CommentSearchData, error) {
	result, err := s.searcher.SearchComments(ctx, q, videoID, offset, limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.comments.GetRowsByIDs(ctx, result.IDs, viewerID)
	if err != nil {
		return nil, err
	}

	// 按 ES 命中顺序输出，已从数据库删除的评论跳过
	byID := make(map[int64]repository.CommentRow, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	ordered := make([]repository.CommentRow, 0, len(result.IDs))
	for _, id := range result.IDs {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}

	return &dto.CommentSearchData{
		Comments: toCommentInfos(ordered),
		Total:    result.Total,
		Source:   sourceElasticsearch,
	}, nil
}

func finishSearch(data *dto.CommentSearchData, page, limit int) *dto.CommentSearchData {
	data.Page = page
	data.Limit = limit
	data.TotalPages = totalPages(data.Total, limit)
	return data
}
