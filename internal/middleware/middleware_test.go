package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, tokens *auth.TokenService, user *models.User) string {
	t.Helper()
	token, err := tokens.GenerateToken(user, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestOptionalAuthAndRequireStaff(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	r := gin.New()
	r.Use(NewBearerTokenMiddleware(tokens).OptionalAuth())
	r.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil, "staff": IsStaff(c)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Email, "staff": IsStaff(c)})
	})
	r.GET("/export", RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
		body   string
	}{
		{"anonymous", "/whoami", "", http.StatusOK, `{"user":null,"staff":false}`},
		{"invalid token stays anonymous", "/whoami", "Bearer garbage", http.StatusOK, `{"user":null,"staff":false}`},
		{"user", "/whoami", bearer(t, tokens, &models.User{ID: 2, Email: "user@example.org"}), http.StatusOK, `{"user":"user@example.org","staff":false}`},
		{"staff", "/whoami", bearer(t, tokens, &models.User{ID: 1, Email: "staff@example.org", IsStaff: true}), http.StatusOK, `{"user":"staff@example.org","staff":true}`},
		{"export anonymous", "/export", "", http.StatusUnauthorized, ""},
		{"export user", "/export", bearer(t, tokens, &models.User{ID: 2}), http.StatusForbidden, ""},
		{"export staff", "/export", bearer(t, tokens, &models.User{ID: 1, IsStaff: true}), http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(NewBearerTokenMiddleware(auth.NewTokenService("")).OptionalAuth())
	r.GET("/export", RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCacheAnonymousPage(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := services.NewPageCache(client, time.Minute)
	tokens := auth.NewTokenService("test-secret")

	calls := 0
	r := gin.New()
	r.Use(NewBearerTokenMiddleware(tokens).OptionalAuth())
	r.GET("/campaigns/:slug/", CacheAnonymousPage(cache), func(c *gin.Context) {
		calls++
		if c.Param("slug") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"slug": c.Param("slug"), "calls": calls})
	})

	get := func(path, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := get("/campaigns/schulen/?page=2", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := get("/campaigns/schulen/?page=2", "")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("campaign:page:/campaigns/schulen/?page=2"))

	other := get("/campaigns/schulen/?page=3", "")
	assert.Empty(t, other.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)

	staff := get("/campaigns/schulen/?page=2", bearer(t, tokens, &models.User{ID: 1, IsStaff: true}))
	assert.Empty(t, staff.Header().Get("X-Cache"))
	assert.Equal(t, 3, calls)

	get("/campaigns/missing/", "")
	assert.False(t, mr.Exists("campaign:page:/campaigns/missing/"))
}
