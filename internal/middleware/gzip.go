package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type compressWriter struct {
	gin.ResponseWriter
	Writer *gzip.Writer
}

func (c *compressWriter) Write(data []byte) (int, error) {
	return c.Writer.Write(data)
}

func (c *compressWriter) WriteString(s string) (int, error) {
	return c.Writer.Write([]byte(s))
}

// Gzip обрабатывает сжатие ответов и распаковку тел запросов.
func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			gz := gzip.NewWriter(c.Writer)
			defer func() {
				if err := gz.Close(); err != nil {
					logger.Log.Warn("Failed to close gzip writer", zap.Error(err))
				}
			}()
			c.Writer = &compressWriter{Writer: gz, ResponseWriter: c.Writer}
			c.Header("Content-Encoding", "gzip")
		}

		if strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid gzip body"})
				return
			}
			defer func() {
				if err := reader.Close(); err != nil {
					logger.Log.Warn("Failed to close gzip reader", zap.Error(err))
				}
			}()
			c.Request.Body = reader
		}

		c.Next()
	}
}
