package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okfde/froide-campaign-service/internal/models"
)

// TokenValidator turns a bearer token into the platform user
type TokenValidator interface {
	Enabled() bool
	ValidateToken(tokenString string) (*models.User, error)
}

type BearerTokenMiddleware struct {
	tokens TokenValidator
}

func NewBearerTokenMiddleware(tokens TokenValidator) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: tokens}
}

// OptionalAuth sets the user of a valid bearer token in the context.
// Requests without or with an invalid token continue anonymously.
func (m *BearerTokenMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.tokens == nil || !m.tokens.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		user, err := m.tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logrus.WithError(err).Debug("Ignoring invalid bearer token")
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("is_staff", user.IsStaff)
		c.Next()
	}
}

// RequireStaff rejects requests that are not made by a staff user
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// IsStaff reports whether the request is made by a staff user
func IsStaff(c *gin.Context) bool {
	return c.GetBool("is_staff")
}
