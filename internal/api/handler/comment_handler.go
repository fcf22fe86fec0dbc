package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/api/validation"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo GET /api/v1/comments/:videoId
// @Summary 视频评论列表
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.CommentListData}
// @Failure 404 {object} response.Response
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId", "Invalid video id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperr.BadRequest("Invalid pagination parameters").Wrap(err))
		return
	}

	data, err := h.commentService.List(c.Request.Context(), videoID, middleware.CurrentUser(c).ID, &q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Comments fetched successfully", data)
}

// Create POST /api/v1/comments/:videoId
// @Summary 发表评论
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param request body dto.CommentContentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentData}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId", "Invalid video id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.BindError(err, "Content is required"))
		return
	}

	data, err := h.commentService.Add(c.Request.Context(), videoID, middleware.CurrentUser(c).ID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	commentWritesTotal.WithLabelValues("create").Inc()
	response.Created(c, "Comment added successfully", data)
}

// Update PATCH /api/v1/comments/c/:commentId
// @Summary 编辑评论
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Param request body dto.CommentContentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentData}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId", "Invalid comment id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.BindError(err, "Content is required"))
		return
	}

	data, err := h.commentService.Update(c.Request.Context(), commentID, middleware.CurrentUser(c).ID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	commentWritesTotal.WithLabelValues("update").Inc()
	response.OK(c, "Comment edited successfully", data)
}

// Delete DELETE /api/v1/comments/c/:commentId
// @Summary 删除评论
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.DeletedComment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId", "Invalid comment id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	data, err := h.commentService.Delete(c.Request.Context(), commentID, middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	commentWritesTotal.WithLabelValues("delete").Inc()
	response.OK(c, "Comment deleted successfully", data)
}

// Search GET /api/v1/comments/search
// @Summary 搜索评论
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param q query string true "关键词"
// @Param videoId query int false "限定视频"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.CommentSearchData}
// @Failure 400 {object} response.Response
// @Router /comments/search [get]
func (h *CommentHandler) Search(c *gin.Context) {
	var q dto.SearchCommentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperr.BadRequest("Invalid search parameters").Wrap(err))
		return
	}

	data, err := h.commentService.Search(c.Request.Context(), middleware.CurrentUser(c).ID, &q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, "Comments searched successfully", data)
}
