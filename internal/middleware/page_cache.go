package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageStore is the cache backing anonymous page responses
type PageStore interface {
	Key(path, rawQuery string) string
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheAnonymousPage serves GET requests of anonymous users from the cache
// and stores successful responses. Authenticated users always get fresh pages.
func CacheAnonymousPage(store PageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodGet || CurrentUser(c) != nil {
			c.Next()
			return
		}

		key := store.Key(c.Request.URL.Path, c.Request.URL.RawQuery)
		if body, ok := store.Get(c.Request.Context(), key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if rec.Status() == http.StatusOK {
			store.Set(c.Request.Context(), key, rec.body.Bytes())
		}
	}
}
