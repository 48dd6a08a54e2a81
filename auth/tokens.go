// Package auth guards the admin API: password login issuing bearer tokens,
// and passkey registration/login for admins who set one up.
package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenStore issues and validates admin session tokens. Tokens live in
// memory; a restart simply logs every admin out.
type TokenStore struct {
	mu       sync.Mutex
	password string
	tokens   map[string]time.Time
}

func NewTokenStore(password string) *TokenStore {
	return &TokenStore{
		password: password,
		tokens:   make(map[string]time.Time),
	}
}

// Login exchanges the admin password for a fresh token.
func (t *TokenStore) Login(password string) (string, bool) {
	if password != t.password {
		return "", false
	}
	return t.Grant(), true
}

// Grant issues a token without a password check. Used after a successful
// passkey assertion.
func (t *TokenStore) Grant() string {
	token := uuid.NewString()
	t.mu.Lock()
	t.tokens[token] = time.Now()
	t.mu.Unlock()
	return token
}

func (t *TokenStore) Valid(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.tokens[token]
	return ok
}

// Middleware rejects requests without a valid Bearer token.
func (t *TokenStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || !t.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "Unauthorized"})
			return
		}
		c.Next()
	}
}
