package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := NewTokenStore("secret")
	_, ok := ts.Login("wrong")
	assert.False(t, ok)
}

func TestLoginIssuesValidToken(t *testing.T) {
	ts := NewTokenStore("secret")
	token, ok := ts.Login("secret")
	require.True(t, ok)
	assert.True(t, ts.Valid(token))
	assert.False(t, ts.Valid("made-up"))
}

func TestTokensAreUnique(t *testing.T) {
	ts := NewTokenStore("secret")
	a, _ := ts.Login("secret")
	b, _ := ts.Login("secret")
	assert.NotEqual(t, a, b)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := NewTokenStore("secret")
	token, _ := ts.Login("secret")

	router := gin.New()
	router.GET("/secure", ts.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for _, tc := range []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{token, http.StatusUnauthorized}, // missing Bearer prefix
		{"Bearer " + token, http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "header=%q", tc.header)
	}
}
