package repository

import (
	"context"
	"time"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

// ChannelProfileRow 频道主页聚合结果
type ChannelProfileRow struct {
	ID                        int64
	Username                  string
	FullName                  string
	Email                     string
	Avatar                    string
	CoverImage                string
	CreatedAt                 time.Time
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// WatchHistoryRow 观看记录 + 视频 + 视频作者
type WatchHistoryRow struct {
	VideoID       int64
	Title         string
	Description   string
	VideoFile     string
	Thumbnail     string
	Duration      float64
	Views         int64
	WatchedAt     time.Time
	OwnerID       int64
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail 用户名或邮箱任一匹配（空值不参与匹配）
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := query.Order("id ASC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther 检查邮箱是否属于其他用户
func (r *UserRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update 更新用户字段并返回最新记录
func (r *UserRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// SetRefreshToken 保存 refresh token，传 nil 表示清除
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("refresh_token", token).Error
}

// ReplaceRefreshToken 仅当当前 token 等于 old 时替换；返回 false 表示已被轮换或注销
func (r *UserRepository) ReplaceRefreshToken(ctx context.Context, id int64, old, next string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, old).
		UpdateColumn("refresh_token", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// GetChannelProfile 频道主页：订阅者数、已订阅数、当前用户是否已订阅
func (r *UserRepository) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*ChannelProfileRow, error) {
	var row ChannelProfileRow
	err := r.db.WithContext(ctx).Table("users AS u").
		Select(`u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image, u.created_at,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) AS is_subscribed`, viewerID).
		Where("u.username = ?", username).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListWatchHistory 获取观看记录（最近观看在前）
func (r *UserRepository) ListWatchHistory(ctx context.Context, userID int64) ([]WatchHistoryRow, error) {
	var rows []WatchHistoryRow
	err := r.db.WithContext(ctx).Table("watch_histories AS w").
		Select(`v.id AS video_id, v.title, v.description, v.video_file, v.thumbnail, v.duration, v.views,
			w.watched_at, o.id AS owner_id, o.username AS owner_username,
			o.full_name AS owner_full_name, o.avatar AS owner_avatar`).
		Joins("JOIN videos v ON v.id = w.video_id").
		Joins("LEFT JOIN users o ON o.id = v.owner_id").
		Where("w.user_id = ?", userID).
		Order("w.watched_at DESC, w.id DESC").
		Scan(&rows).Error
	return rows, err
}
