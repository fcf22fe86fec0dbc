package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	users   UserStore
	images  ImageStore
	cleanup MediaCleanupPublisher
}

func NewUserService(users UserStore, images ImageStore, cleanup MediaCleanupPublisher) *UserService {
	return &UserService{users: users, images: images, cleanup: cleanup}
}

// UpdateAccount 更新昵称与邮箱
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, apperr.BadRequest("All fields are required")
	}

	taken, err := s.users.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email is already in use")
	}

	user, err := s.users.Update(ctx, userID, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}
	return ToUserInfo(user), nil
}

// imageField 头像 / 封面图对应的列与提示信息
type imageField struct {
	folder     string
	urlColumn  string
	objColumn  string
	missingMsg string
	failedMsg  string
	reason     string
}

var (
	avatarField = imageField{
		folder:     avatarFolder,
		urlColumn:  "avatar",
		objColumn:  "avatar_object",
		missingMsg: "Avatar file is missing",
		failedMsg:  "Error while uploading avatar",
		reason:     "avatar replaced",
	}
	coverField = imageField{
		folder:     coverFolder,
		urlColumn:  "cover_image",
		objColumn:  "cover_image_object",
		missingMsg: "Cover image file is missing",
		failedMsg:  "Error while uploading cover image",
		reason:     "cover image replaced",
	}
)

// UpdateAvatar 替换头像，旧图片异步删除
func (s *UserService) UpdateAvatar(ctx context.Context, user *model.User, file *FileUpload) (*dto.UserInfo, error) {
	return s.replaceImage(ctx, user, file, avatarField, user.AvatarObject)
}

// UpdateCoverImage 替换封面图，旧图片异步删除
func (s *UserService) UpdateCoverImage(ctx context.Context, user *model.User, file *FileUpload) (*dto.UserInfo, error) {
	return s.replaceImage(ctx, user, file, coverField, user.CoverImageObject)
}

func (s *UserService) replaceImage(ctx context.Context, user *model.User, file *FileUpload, field imageField, oldObject string) (*dto.UserInfo, error) {
	if file == nil {
		return nil, apperr.BadRequest(field.missingMsg)
	}

	obj, err := s.images.Upload(ctx, field.folder, file.Filename, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, apperr.BadRequest(field.failedMsg).Wrap(err)
	}

	updated, err := s.users.Update(ctx, user.ID, map[string]interface{}{
		field.urlColumn: obj.URL,
		field.objColumn: obj.Object,
	})
	if err != nil {
		if rmErr := s.images.Remove(ctx, obj.Bucket, obj.Object); rmErr != nil {
			logger.Warn("Failed to remove orphan image", zap.String("object", obj.Object), zap.Error(rmErr))
		}
		return nil, err
	}

	if oldObject != "" && s.cleanup != nil {
		ev := &kafka.MediaCleanupEvent{Bucket: s.images.Bucket(), Object: oldObject, Reason: field.reason}
		if err := s.cleanup.PublishMediaCleanup(ctx, ev); err != nil {
			logger.Warn("Failed to queue media cleanup",
				zap.Int64("user_id", user.ID),
				zap.String("object", oldObject),
				zap.Error(err),
			)
		}
	}

	return ToUserInfo(updated), nil
}

// GetChannelProfile 频道主页
func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*dto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.BadRequest("username is missing")
	}

	row, err := s.users.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Channel does not exist")
		}
		return nil, err
	}

	return &dto.ChannelProfile{
		ID:                        row.ID,
		Username:                  row.Username,
		FullName:                  row.FullName,
		Email:                     row.Email,
		Avatar:                    row.Avatar,
		CoverImage:                row.CoverImage,
		SubscribersCount:          row.SubscribersCount,
		ChannelsSubscribedToCount: row.ChannelsSubscribedToCount,
		IsSubscribed:              row.IsSubscribed,
		CreatedAt:                 row.CreatedAt,
	}, nil
}

// GetWatchHistory 观看历史，最近观看的在前
func (s *UserService) GetWatchHistory(ctx context.Context, userID int64) ([]dto.WatchHistoryItem, error) {
	rows, err := s.users.ListWatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WatchHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.WatchHistoryItem{
			ID:          r.VideoID,
			Title:       r.Title,
			Description: r.Description,
			VideoFile:   r.VideoFile,
			Thumbnail:   r.Thumbnail,
			Duration:    r.Duration,
			Views:       r.Views,
			WatchedAt:   r.WatchedAt,
			Owner: dto.OwnerBrief{
				FullName: r.OwnerFullName,
				Username: r.OwnerUsername,
				Avatar:   r.OwnerAvatar,
			},
		})
	}
	return items, nil
}
