package handler

import (
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"time"

	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/config"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name, message string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest(message)
	}
	return id, nil
}

// readImage 读取 multipart 中的图片字段；字段缺失时返回 nil，由 service 给出提示
func readImage(c *gin.Context, field string, cfg *config.UploadConfig) (*service.FileUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		return nil, noop, nil
	}
	if err := checkImage(fh, cfg); err != nil {
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperr.BadRequest("Unable to read " + field + " file").Wrap(err)
	}

	upload := &service.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return upload, func() { _ = f.Close() }, nil
}

func checkImage(fh *multipart.FileHeader, cfg *config.UploadConfig) error {
	if cfg.MaxImageBytes > 0 && fh.Size > cfg.MaxImageBytes {
		return apperr.BadRequest("File is too large")
	}
	if len(cfg.ImageTypes) > 0 && !slices.Contains(cfg.ImageTypes, fh.Header.Get("Content-Type")) {
		return apperr.BadRequest("Unsupported image type")
	}
	return nil
}

// setAuthCookies 写入 access / refresh Cookie（HttpOnly）
func setAuthCookies(c *gin.Context, cfg *config.CookieConfig, access, refresh string, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, access, int(accessTTL.Seconds()), "/", cfg.Domain, cfg.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refresh, int(refreshTTL.Seconds()), "/", cfg.Domain, cfg.Secure, true)
}

func clearAuthCookies(c *gin.Context, cfg *config.CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", cfg.Domain, cfg.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", cfg.Domain, cfg.Secure, true)
}
