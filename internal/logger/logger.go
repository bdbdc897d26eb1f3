package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Log — глобальный логгер приложения. До вызова Initialize логирование отключено.
var Log *zap.Logger = zap.NewNop()

// Initialize настраивает глобальный логгер с указанным уровнем.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// RequestLogger логирует входящий HTTP запрос и его результат:
// метод, URI, статус, размер ответа и длительность обработки.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		Log.Info("handled HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("URI", c.Request.RequestURI),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
