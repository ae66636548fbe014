package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/admin"
	"hospital-portal/internal/models"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// AdminHandler exposes the account-management routes.
type AdminHandler struct {
	API *upstream.Client
	Log *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(api *upstream.Client, log *zap.Logger) *AdminHandler {
	return &AdminHandler{API: api, Log: log}
}

func (h *AdminHandler) panel(c *gin.Context) *admin.Panel {
	return admin.NewPanel(h.API, c.Request.Cookies(), h.Log)
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid user id")
		return 0, false
	}
	return id, true
}

// ListUsers returns all accounts with the protected one marked.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.panel(c).LoadUsers(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Users", users)
}

// GetUser returns a single account for the edit view.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	user, err := h.panel(c).GetUser(c.Request.Context(), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "User", user)
}

// UpdateUser applies an account edit.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.panel(c).UpdateUser(c.Request.Context(), id, update); err != nil {
		writeFormError(c, err)
		return
	}
	utils.Success(c, "User updated", gin.H{"id": id})
}

// DeleteUser deletes an account. The root account is refused.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	panel := h.panel(c)
	if err := panel.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, admin.ErrProtectedUser) {
			utils.Forbidden(c, "This account cannot be deleted.")
			return
		}
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "User deleted", gin.H{"id": id})
}
