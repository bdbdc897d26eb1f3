package router

import (
	"net/http"

	"github.com/MaxRadzey/aliaser/internal/handler"
	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/MaxRadzey/aliaser/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter создает и настраивает HTTP роутер со всеми middleware и маршрутами.
func SetupRouter(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true

	SetupMiddleware(r)

	r.Use(logger.RequestLogger())
	r.Use(middleware.Gzip())

	r.GET("/", h.Welcome)
	r.GET("/ping", h.Ping)

	// JSON API поверх жизненного цикла записи
	r.POST("/shorten", h.CreateAlias)
	r.GET("/shorten/:code", h.ResolveAlias)
	r.GET("/shorten/:code/stats", h.GetAliasStats)
	r.PUT("/shorten/:code", h.UpdateAlias)
	r.DELETE("/shorten/:code", h.DeleteAlias)

	// Короткая ссылка: редирект на целевой URL
	r.GET("/:code", h.RedirectAlias)

	return r
}

// SetupMiddleware настраивает middleware для роутера.
func SetupMiddleware(router *gin.Engine) {
	router.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method not allowed!")
	})
}
