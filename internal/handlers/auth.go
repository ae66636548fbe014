package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/authflow"
	"hospital-portal/internal/middleware"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// AuthHandler exposes the login, signup, logout and session-check routes.
type AuthHandler struct {
	API *upstream.Client
	Log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api *upstream.Client, log *zap.Logger) *AuthHandler {
	return &AuthHandler{API: api, Log: log}
}

func (h *AuthHandler) forms(c *gin.Context) *authflow.Forms {
	resolver, _ := middleware.GetResolver(c)
	return authflow.NewForms(h.API, resolver, h.Log)
}

// CheckLogin reports the resolved session state. 401 is the normal answer
// for an anonymous caller, not a failure.
func (h *AuthHandler) CheckLogin(c *gin.Context) {
	s := middleware.GetSession(c)
	if !s.Authenticated {
		utils.Unauthorized(c, "Not authenticated")
		return
	}
	utils.Success(c, "Authenticated", s)
}

// Login handles the login form.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds authflow.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.forms(c).Login(c.Request.Context(), c.Request.Cookies(), creds)
	if err != nil {
		writeFormError(c, err)
		return
	}

	relayCookies(c, result.Cookies)
	utils.Success(c, "Login successful", gin.H{"redirect": result.Redirect})
}

// Signup handles the signup form, including the automatic login attempt.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input authflow.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.forms(c).Signup(c.Request.Context(), c.Request.Cookies(), input)
	if err != nil {
		writeFormError(c, err)
		return
	}

	relayCookies(c, result.Cookies)
	utils.Created(c, "Signup successful", gin.H{
		"redirect": result.Redirect,
		"notice":   result.Notice,
	})
}

// Logout terminates the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	result, err := h.forms(c).Logout(c.Request.Context(), c.Request.Cookies())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	relayCookies(c, result.Cookies)
	utils.Success(c, "Logged out", gin.H{"redirect": result.Redirect})
}

// relayCookies copies backend session cookies onto the portal response.
func relayCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(c.Writer, cookie)
	}
}
