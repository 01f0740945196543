package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"authkit/models"
	"authkit/pkg/hash"
	"authkit/pkg/token"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// memoryDirectory is an in-memory Directory for tests.
type memoryDirectory struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID uint
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{users: make(map[string]*models.User)}
}

func (d *memoryDirectory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (d *memoryDirectory) Create(_ context.Context, user *models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Username]; ok {
		return ErrDuplicateUser
	}
	d.nextID++
	user.ID = d.nextID
	cp := *user
	d.users[user.Username] = &cp
	return nil
}

func (d *memoryDirectory) remove(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, username)
}

// newTestApp builds an app over an in-memory directory and returns it with
// its router. A catch-all protected endpoint is mounted for gate tests.
func newTestApp(t *testing.T) (*app, *memoryDirectory, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := newMemoryDirectory()
	a := &app{
		cfg:    &Config{},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		users:  dir,
		hasher: hash.NewBcryptHasher(bcrypt.MinCost),
		tokens: token.NewJWTManager([]byte("test-secret"), time.Minute, time.Hour),
	}
	r := gin.New()
	a.setupRoutes(r)
	r.GET("/private", func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return a, dir, r
}

// performRequest runs a single request through the router.
func performRequest(r http.Handler, method, path string, body io.Reader, token, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
