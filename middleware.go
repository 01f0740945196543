package main

import (
	"net/http"
	"strings"

	"authkit/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by the gate for downstream handlers.
const (
	ctxUserKey     = "user"
	ctxUsernameKey = "username"
)

// publicPaths are served without authentication: API docs, the schema, and
// the endpoints that exist to obtain tokens in the first place.
var publicPaths = map[string]struct{}{
	"/docs":          {},
	"/redoc":         {},
	"/openapi.json":  {},
	"/user/login":    {},
	"/user/register": {},
	"/user/refresh":  {},
	"/user/token":    {},
}

// authGate intercepts every request before routing. Outside the public
// allowlist it requires a valid bearer token whose subject resolves to an
// existing user, and attaches that user to the request context. All failures
// collapse to 401; the precise cause goes only to the log.
func (a *app) authGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := publicPaths[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		user, ok := a.authenticateRequest(c)
		if !ok {
			return // already aborted
		}
		c.Set(ctxUserKey, user)
		c.Set(ctxUsernameKey, user.Username)
		c.Next()
	}
}

// authenticateRequest runs header extraction, token verification, and subject
// resolution. It aborts the request with 401 on any failure, including a
// panic in a collaborator; no fault propagates past the gate.
func (a *app) authenticateRequest(c *gin.Context) (user *models.User, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("auth gate panic", "panic", r, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
			user, ok = nil, false
		}
	}()

	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
		return nil, false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		a.log.Info("malformed authorization header", "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
		return nil, false
	}

	claims, err := a.tokens.Verify(parts[1])
	if err != nil {
		a.log.Info("token rejected", "err", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return nil, false
	}

	user, err = a.users.FindByUsername(c.Request.Context(), claims.Subject)
	if err != nil {
		// token is well-formed but its subject no longer exists; the response
		// stays indistinguishable from an invalid token
		a.log.Info("token subject not found", "subject", claims.Subject)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return nil, false
	}
	return user, true
}
