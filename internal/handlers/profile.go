package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// maxAvatarBytes limits avatar uploads to 5 MiB.
const maxAvatarBytes = 5 << 20

// ProfileHandler exposes the dashboard and the avatar routes.
type ProfileHandler struct {
	API *upstream.Client
	Log *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(api *upstream.Client, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{API: api, Log: log}
}

// Dashboard returns the caller's profile.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	profile, err := h.API.Dashboard(c.Request.Context(), c.Request.Cookies())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Dashboard", profile)
}

// UploadAvatar validates and forwards a multipart avatar upload, then
// chains a profile re-fetch so the caller gets the fresh avatar URL.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "An image file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.BadRequest(c, "Please select an image file")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		utils.BadRequest(c, "File size must not exceed 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerError(c, "Failed to read the uploaded file")
		return
	}
	defer file.Close()

	cookies := c.Request.Cookies()
	if _, err := h.API.UploadAvatar(c.Request.Context(), cookies, fileHeader.Filename, contentType, file); err != nil {
		writeUpstreamError(c, err)
		return
	}

	profile, err := h.API.Dashboard(c.Request.Context(), cookies)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Avatar updated", profile)
}

// RemoveAvatar deletes the caller's avatar and returns the refreshed
// profile.
func (h *ProfileHandler) RemoveAvatar(c *gin.Context) {
	cookies := c.Request.Cookies()
	if err := h.API.RemoveAvatar(c.Request.Context(), cookies); err != nil {
		writeUpstreamError(c, err)
		return
	}

	profile, err := h.API.Dashboard(c.Request.Context(), cookies)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Avatar removed", profile)
}

// RemoveUserAvatar deletes another account's avatar (admin edit view).
func (h *ProfileHandler) RemoveUserAvatar(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.API.RemoveUserAvatar(c.Request.Context(), c.Request.Cookies(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Avatar removed", gin.H{"id": id})
}
