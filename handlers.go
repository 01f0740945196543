package main

import (
	"errors"
	"net/http"
	"strings"

	"authkit/models"

	"github.com/gin-gonic/gin"
)

func (a *app) setupRoutes(r *gin.Engine) {
	r.Use(a.authGate())
	u := r.Group("/user")
	u.POST("/register", a.registerHandler)
	u.POST("/login", a.loginHandler)
	u.POST("/refresh", a.refreshHandler)
	u.POST("/token", a.tokenHandler)
	u.GET("/userInfo", a.userInfoHandler)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *app) registerHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.registerUser(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		a.log.Info("user registered", "username", user.Username)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	case errors.Is(err, ErrDuplicateUser):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, errUsernameRequired), errors.Is(err, errPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		a.log.Error("register failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	}
}

func (a *app) loginHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.log.Info("login failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	access, err := a.tokens.IssueAccess(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refresh, err := a.tokens.IssueRefresh(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	a.log.Info("login successful", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	})
}

// refreshHandler exchanges a refresh token for a new access/refresh pair. The
// token is read from the Authorization header when present, otherwise from
// the request body.
func (a *app) refreshHandler(c *gin.Context) {
	raw := refreshTokenFromRequest(c)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token required"})
		return
	}
	pair, err := a.tokens.Refresh(raw)
	if err != nil {
		a.log.Info("refresh rejected", "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

func refreshTokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return header
	}
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

// tokenHandler is the legacy OAuth2-password-style endpoint: form-encoded
// credentials in, a single access token out. Kept for tooling that expects a
// tokenUrl.
func (a *app) tokenHandler(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	access, err := a.tokens.IssueAccess(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "token_type": "bearer"})
}

func (a *app) userInfoHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// currentUser returns the principal attached by the auth gate.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
