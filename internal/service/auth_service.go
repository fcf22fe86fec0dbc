package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/infra/minio"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	avatarFolder = "avatars"
	coverFolder  = "covers"
)

var (
	ErrUnauthorized        = apperr.Unauthorized("Unauthorized request")
	ErrInvalidAccessToken  = apperr.Unauthorized("Invalid access token")
	ErrInvalidRefreshToken = apperr.Unauthorized("Invalid refresh token")
	ErrRefreshTokenUsed    = apperr.Unauthorized("Refresh token is expired or used")
)

type AuthService struct {
	users     UserStore
	images    ImageStore
	tokens    *utils.TokenManager
	blocklist TokenBlocklist
}

func NewAuthService(users UserStore, images ImageStore, tokens *utils.TokenManager, blocklist TokenBlocklist) *AuthService {
	return &AuthService{users: users, images: images, tokens: tokens, blocklist: blocklist}
}

// Register 用户注册：头像必填，封面图可选
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatar, cover *FileUpload) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperr.BadRequest("All fields are required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User with email or username already exists")
	}

	if avatar == nil {
		return nil, apperr.BadRequest("Avatar file is required")
	}
	avatarObj, err := s.upload(ctx, avatarFolder, avatar)
	if err != nil {
		logger.Warn("Avatar upload failed", zap.String("username", username), zap.Error(err))
		return nil, apperr.BadRequest("Avatar file is required").Wrap(err)
	}
	uploaded := []*minio.UploadedObject{avatarObj}

	var coverObj *minio.UploadedObject
	if cover != nil {
		coverObj, err = s.upload(ctx, coverFolder, cover)
		if err != nil {
			// 封面图失败不影响注册
			logger.Warn("Cover image upload failed", zap.String("username", username), zap.Error(err))
		} else {
			uploaded = append(uploaded, coverObj)
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatarObj.URL,
		AvatarObject: avatarObj.Object,
		Password:     hashedPassword,
	}
	if coverObj != nil {
		user.CoverImage = coverObj.URL
		user.CoverImageObject = coverObj.Object
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.discard(ctx, uploaded)
		return nil, apperr.Internal("Something went wrong while registering the user").Wrap(err)
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while registering the user").Wrap(err)
	}

	logger.Info("User registered", zap.Int64("user_id", created.ID), zap.String("username", created.Username))
	return ToUserInfo(created), nil
}

// Login 用户登录，签发 access / refresh 令牌并保存 refresh token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginData, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperr.BadRequest("username or email is required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, apperr.Internal("Something went wrong while generating refresh and access token").Wrap(err)
	}

	return &dto.LoginData{
		User:         *ToUserInfo(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout 清除 refresh token，并让当前 access token 立即失效；重复调用结果相同
func (s *AuthService) Logout(ctx context.Context, userID int64, claims *utils.Claims) error {
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		return err
	}

	if claims != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.blocklist.Revoke(ctx, claims.ID, ttl); err != nil {
			logger.Warn("Failed to revoke access token", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// Refresh 轮换令牌：旧 refresh token 只能使用一次
func (s *AuthService) Refresh(ctx context.Context, incoming string) (*dto.TokenPair, error) {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ParseRefreshToken(incoming)
	if err != nil {
		return nil, ErrInvalidRefreshToken.Wrap(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != incoming {
		return nil, ErrRefreshTokenUsed
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// 并发刷新时只有一个请求能完成替换
	replaced, err := s.users.ReplaceRefreshToken(ctx, user.ID, incoming, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !replaced {
		return nil, ErrRefreshTokenUsed
	}

	return pair, nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User does not exist")
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return apperr.BadRequest("Invalid old password")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.Update(ctx, userID, map[string]interface{}{"password": hashedPassword}); err != nil {
		return err
	}
	return nil
}

// Authenticate 校验 access token 并加载用户
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, *utils.Claims, error) {
	return s.authenticate(ctx, token, true)
}

// LogoutAuthenticator 退出登录专用：已吊销的 access token 仍可通过，重复退出返回相同结果
type LogoutAuthenticator struct {
	auth *AuthService
}

// ForLogout 返回退出登录使用的认证器
func (s *AuthService) ForLogout() *LogoutAuthenticator {
	return &LogoutAuthenticator{auth: s}
}

func (a *LogoutAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, *utils.Claims, error) {
	return a.auth.authenticate(ctx, token, false)
}

func (s *AuthService) authenticate(ctx context.Context, token string, checkRevoked bool) (*model.User, *utils.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil, ErrUnauthorized
	}

	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, nil, ErrInvalidAccessToken.Wrap(err)
	}

	if checkRevoked {
		revoked, err := s.blocklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, ErrInvalidAccessToken
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidAccessToken
		}
		return nil, nil, err
	}

	return user, claims, nil
}

// CookieTTLs 返回 access / refresh cookie 有效期
func (s *AuthService) CookieTTLs() (access, refresh time.Duration) {
	return s.tokens.AccessTTL(), s.tokens.RefreshTTL()
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(utils.TokenIdentity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
	if err != nil {
		return nil, apperr.Internal("Something went wrong while generating refresh and access token").Wrap(err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while generating refresh and access token").Wrap(err)
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) upload(ctx context.Context, folder string, f *FileUpload) (*minio.UploadedObject, error) {
	return s.images.Upload(ctx, folder, f.Filename, f.Reader, f.Size, f.ContentType)
}

// discard 注册失败时删除已上传的图片
func (s *AuthService) discard(ctx context.Context, objects []*minio.UploadedObject) {
	for _, obj := range objects {
		if err := s.images.Remove(ctx, obj.Bucket, obj.Object); err != nil {
			logger.Warn("Failed to remove orphan image", zap.String("object", obj.Object), zap.Error(err))
		}
	}
}

// ToUserInfo 转换为对外的用户信息
func ToUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
