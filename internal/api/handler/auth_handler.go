package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/api/validation"
	"vidtube-go/internal/config"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	cookie      *config.CookieConfig
	upload      *config.UploadConfig
}

func NewAuthHandler(authService *service.AuthService, cookie *config.CookieConfig, upload *config.UploadConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, upload: upload}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，头像必填，封面图可选
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "昵称"
// @Param email formData string true "邮箱"
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "封面图"
// @Success 201 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(validation.BindError(err, "All fields are required"))
		return
	}

	avatar, closeAvatar, err := readImage(c, "avatar", h.upload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer closeAvatar()

	cover, closeCover, err := readImage(c, "coverImage", h.upload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer closeCover()

	user, err := h.authService.Register(c.Request.Context(), &req, avatar, cover)
	if err != nil {
		_ = c.Error(err)
		return
	}

	registrationsTotal.Inc()
	response.Created(c, "User registered successfully", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用用户名或邮箱登录，令牌同时写入 Cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.BindError(err, "username or email is required"))
		return
	}

	data, err := h.authService.Login(c.Request.Context(), &req)
	loginsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		_ = c.Error(err)
		return
	}

	accessTTL, refreshTTL := h.authService.CookieTTLs()
	setAuthCookies(c, h.cookie, data.AccessToken, data.RefreshToken, accessTTL, refreshTTL)
	response.OK(c, "User logged in successfully", data)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.authService.Logout(c.Request.Context(), user.ID, middleware.CurrentClaims(c)); err != nil {
		_ = c.Error(err)
		return
	}

	clearAuthCookies(c, h.cookie)
	response.OK(c, "User logged out", gin.H{})
}

// RefreshToken 刷新令牌
// @Summary 刷新令牌
// @Description refresh token 来自 Cookie 或请求体，成功后旧 token 失效
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "refresh token"
// @Success 200 {object} response.Response{data=dto.TokenPair}
// @Failure 401 {object} response.Response
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		incoming = req.RefreshToken
	}

	pair, err := h.authService.Refresh(c.Request.Context(), incoming)
	refreshesTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		_ = c.Error(err)
		return
	}

	accessTTL, refreshTTL := h.authService.CookieTTLs()
	setAuthCookies(c, h.cookie, pair.AccessToken, pair.RefreshToken, accessTTL, refreshTTL)
	response.OK(c, "Access token refreshed", pair)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.BindError(err, "All fields are required"))
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Password changed successfully", gin.H{})
}
