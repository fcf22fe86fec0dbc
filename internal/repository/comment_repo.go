package repository

import (
	"context"
	"strings"
	"time"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

// CommentRow 评论 + 作者 + 点赞聚合
type CommentRow struct {
	ID            int64
	Content       string
	VideoID       int64
	OwnerID       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
	LikesCount    int64
	IsLiked       bool
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容并返回最新记录
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteWithLikes 在同一事务中删除评论及其点赞
func (r *CommentRepository) DeleteWithLikes(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// withStats 评论关联作者与点赞：likes_count 为点赞总数，is_liked 表示 viewerID 是否点过赞
func (r *CommentRepository) withStats(ctx context.Context, viewerID int64) *gorm.DB {
	return r.db.WithContext(ctx).Table("comments AS c").
		Select(`c.id, c.content, c.video_id, c.owner_id, c.created_at, c.updated_at,
			o.username AS owner_username, o.full_name AS owner_full_name, o.avatar AS owner_avatar,
			COUNT(l.id) AS likes_count,
			COALESCE(BOOL_OR(l.liked_by = ?), FALSE) AS is_liked`, viewerID).
		Joins("LEFT JOIN users o ON o.id = c.owner_id").
		Joins("LEFT JOIN likes l ON l.comment_id = c.id").
		Group("c.id, o.id")
}

// ListByVideoWithStats 视频评论分页：按创建时间倒序，同一时间按 ID 倒序
func (r *CommentRepository) ListByVideoWithStats(ctx context.Context, videoID, viewerID int64, offset, limit int) ([]CommentRow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]CommentRow, 0, limit)
	if total == 0 {
		return rows, 0, nil
	}

	err := r.withStats(ctx, viewerID).
		Where("c.video_id = ?", videoID).
		Order("c.created_at DESC, c.id DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetRowsByIDs 按 ID 批量查询聚合行（顺序不保证）
func (r *CommentRepository) GetRowsByIDs(ctx context.Context, ids []int64, viewerID int64) ([]CommentRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []CommentRow
	err := r.withStats(ctx, viewerID).Where("c.id IN ?", ids).Scan(&rows).Error
	return rows, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，关键词按字面匹配（PostgreSQL 默认转义符为反斜杠）
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchByContent 数据库模糊搜索（ES 不可用时的降级路径）
func (r *CommentRepository) SearchByContent(ctx context.Context, q string, videoID *int64, viewerID int64, offset, limit int) ([]CommentRow, int64, error) {
	pattern := "%" + escapeLike(q) + "%"

	countQuery := r.db.WithContext(ctx).Model(&model.Comment{}).Where("content ILIKE ?", pattern)
	if videoID != nil {
		countQuery = countQuery.Where("video_id = ?", *videoID)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]CommentRow, 0, limit)
	if total == 0 {
		return rows, 0, nil
	}

	query := r.withStats(ctx, viewerID).Where("c.content ILIKE ?", pattern)
	if videoID != nil {
		query = query.Where("c.video_id = ?", *videoID)
	}
	err := query.Order("c.created_at DESC, c.id DESC").Offset(offset).Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListForIndex 批量读取评论（ES 全量同步使用）
func (r *CommentRepository) ListForIndex(ctx context.Context, afterID int64, batch int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Where("id > ?", afterID).Order("id ASC").Limit(batch).Find(&comments).Error
	return comments, err
}
