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

type UserHandler struct {
	userService *service.UserService
	upload      *config.UploadConfig
}

func NewUserHandler(userService *service.UserService, upload *config.UploadConfig) *UserHandler {
	return &UserHandler{userService: userService, upload: upload}
}

// GetCurrentUser 当前登录用户
// @Summary 当前用户信息
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 401 {object} response.Response
// @Router /users/current-user [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	response.OK(c, "Current user fetched successfully", service.ToUserInfo(middleware.CurrentUser(c)))
}

// UpdateAccount 更新账户信息
// @Summary 更新昵称与邮箱
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAccountRequest true "账户信息"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.BindError(err, "All fields are required"))
		return
	}

	user, err := h.userService.UpdateAccount(c.Request.Context(), middleware.CurrentUser(c).ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Account details updated successfully", user)
}

// UpdateAvatar 更换头像
// @Summary 更换头像
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.Response
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, closeFile, err := readImage(c, "avatar", h.upload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer closeFile()

	user, err := h.userService.UpdateAvatar(c.Request.Context(), middleware.CurrentUser(c), file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Avatar image updated successfully", user)
}

// UpdateCoverImage 更换封面图
// @Summary 更换封面图
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "封面图"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.Response
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	file, closeFile, err := readImage(c, "coverImage", h.upload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer closeFile()

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), middleware.CurrentUser(c), file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Cover image updated successfully", user)
}

// GetChannelProfile 频道主页
// @Summary 频道主页
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile}
// @Failure 404 {object} response.Response
// @Router /users/c/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	profile, err := h.userService.GetChannelProfile(c.Request.Context(), c.Param("username"), middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "User channel fetched successfully", profile)
}

// GetWatchHistory 观看历史
// @Summary 观看历史
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.WatchHistoryItem}
// @Router /users/history [get]
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	items, err := h.userService.GetWatchHistory(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Watch history fetched successfully", items)
}

