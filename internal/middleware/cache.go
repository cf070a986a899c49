package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "ntcache"

// captureWriter buffers the response body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheMiddleware serves public GET responses from redis for the given TTL.
// A nil client disables caching entirely; redis errors fall through to the
// handler so the site degrades gracefully when redis is down.
func CacheMiddleware(client *redis.Client, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if client == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if cached, err := client.Get(c.Request.Context(), key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if c.Writer.Status() != http.StatusOK || w.buf.Len() == 0 {
			return
		}
		if err := client.Set(c.Request.Context(), key, w.buf.Bytes(), ttl).Err(); err != nil {
			log.Debug("failed to store response in cache",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func cacheKey(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return fmt.Sprintf("%s:%x", cacheKeyPrefix, sum[:])
}
