package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishTimeout = 3 * time.Second

type CommentService struct {
	comments CommentStore
	videos   VideoStore
	events   CommentEventPublisher
	searcher CommentSearcher
}

// NewCommentService events / searcher 可以为 nil
func NewCommentService(comments CommentStore, videos VideoStore, events CommentEventPublisher, searcher CommentSearcher) *CommentService {
	return &CommentService{comments: comments, videos: videos, events: events, searcher: searcher}
}

// List 视频评论分页列表，含点赞数与当前用户是否点赞
func (s *CommentService) List(ctx context.Context, videoID, viewerID int64, q *dto.PageQuery) (*dto.CommentListData, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}

	page, limit := normalizePage(q.Page, q.Limit)
	rows, total, err := s.comments.ListByVideoWithStats(ctx, videoID, viewerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	pages := totalPages(total, limit)
	data := &dto.CommentListData{
		Comments:      toCommentInfos(rows),
		TotalComments: total,
		Limit:         limit,
		Page:          page,
		TotalPages:    pages,
		HasPrevPage:   page > 1,
		HasNextPage:   page < pages,
	}
	if data.HasPrevPage {
		prev := page - 1
		data.PrevPage = &prev
	}
	if data.HasNextPage {
		next := page + 1
		data.NextPage = &next
	}
	return data, nil
}

// Add 发表评论
func (s *CommentService) Add(ctx context.Context, videoID, userID int64, content string) (*dto.CommentData, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("Content is required")
	}
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: content,
		VideoID: videoID,
		OwnerID: userID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperr.Internal("Failed to add comment please try again").Wrap(err)
	}

	s.publish(ctx, kafka.CommentUpserted, comment)
	return toCommentData(comment), nil
}

// Update 编辑评论，仅作者可操作
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, content string) (*dto.CommentData, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("Content is required")
	}

	comment, err := s.getOwned(ctx, commentID, userID, "Only comment owner can edit their comment")
	if err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(ctx, comment.ID, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, apperr.Internal("Failed to edit comment please try again").Wrap(err)
	}

	s.publish(ctx, kafka.CommentUpserted, updated)
	return toCommentData(updated), nil
}

// Delete 删除评论及其点赞，仅作者可操作
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) (*dto.DeletedComment, error) {
	comment, err := s.getOwned(ctx, commentID, userID, "Only comment owner can delete their comment")
	if err != nil {
		return nil, err
	}

	if err := s.comments.DeleteWithLikes(ctx, comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, apperr.Internal("Failed to delete comment please try again").Wrap(err)
	}

	s.publish(ctx, kafka.CommentDeleted, comment)
	return &dto.DeletedComment{CommentID: comment.ID}, nil
}

func (s *CommentService) ensureVideo(ctx context.Context, videoID int64) error {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Video not found")
	}
	return nil
}

func (s *CommentService) getOwned(ctx context.Context, commentID, userID int64, denied string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, apperr.BadRequest(denied)
	}
	return comment, nil
}

// publish 通知搜索索引；失败只记录日志
func (s *CommentService) publish(ctx context.Context, action kafka.CommentAction, c *model.Comment) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := &kafka.CommentEvent{
		Action:    action,
		CommentID: c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if action == kafka.CommentUpserted {
		ev.Content = c.Content
	}

	if err := s.events.PublishCommentEvent(ctx, ev); err != nil {
		logger.Warn("Failed to publish comment event",
			zap.Int64("comment_id", c.ID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func toCommentData(c *model.Comment) *dto.CommentData {
	return &dto.CommentData{
		ID:        c.ID,
		Content:   c.Content,
		Video:     c.VideoID,
		Owner:     c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentInfos(rows []repository.CommentRow) []dto.CommentInfo {
	list := make([]dto.CommentInfo, 0, len(rows))
	for _, r := range rows {
		list = append(list, dto.CommentInfo{
			ID:      r.ID,
			Content: r.Content,
			Video:   r.VideoID,
			Owner: dto.CommentOwner{
				ID:       r.OwnerID,
				Username: r.OwnerUsername,
				FullName: r.OwnerFullName,
				Avatar:   r.OwnerAvatar,
			},
			LikesCount: r.LikesCount,
			IsLiked:    r.IsLiked,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return list
}
