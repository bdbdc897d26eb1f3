package handler

import (
	"errors"
	"net/http"

	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/MaxRadzey/aliaser/internal/models"
	"github.com/MaxRadzey/aliaser/internal/service"
	dbstorage "github.com/MaxRadzey/aliaser/internal/storage"
	"github.com/MaxRadzey/aliaser/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Service *service.Service
}

// Welcome хэндлер, отвечает приветственной строкой на корневой GET-запрос.
func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to aliaser, send a POST request to /shorten to shorten your url")
}

// CreateAlias хэндлер, обрабатывает POST-запросы с JSON телом {"url": "..."},
// создает запись с коротким кодом и возвращает ее (201).
// URL обязан начинаться с http:// или https://, иначе 400.
func (h *Handler) CreateAlias(c *gin.Context) {
	var req models.AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if !utils.IsValidURL(req.URL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url must start with http:// or https://"})
		return
	}

	alias, err := h.Service.Create(c.Request.Context(), req.URL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewAliasResponse(alias))
}

// ResolveAlias хэндлер, возвращает запись по коду, увеличивая счетчик
// обращений. Отсутствие кода — 404.
func (h *Handler) ResolveAlias(c *gin.Context) {
	alias, err := h.Service.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAliasResponse(alias))
}

// RedirectAlias хэндлер, разрешает код и делает редирект (307) на целевой URL.
// Засчитывается как обращение — счетчик увеличивается.
func (h *Handler) RedirectAlias(c *gin.Context) {
	alias, err := h.Service.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, alias.TargetURL)
}

// GetAliasStats хэндлер, возвращает запись по коду без изменения счетчика
// и updatedAt. Инспекция метрик не влияет на сами метрики.
func (h *Handler) GetAliasStats(c *gin.Context) {
	alias, err := h.Service.GetStats(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAliasResponse(alias))
}

// UpdateAlias хэндлер, обрабатывает PUT-запросы, заменяет целевой URL записи.
// Код и createdAt не меняются, accessCount сохраняется.
func (h *Handler) UpdateAlias(c *gin.Context) {
	var req models.AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if !utils.IsValidURL(req.URL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url must start with http:// or https://"})
		return
	}

	alias, err := h.Service.UpdateTarget(c.Request.Context(), c.Param("code"), req.URL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAliasResponse(alias))
}

// DeleteAlias хэндлер, удаляет запись по коду: 204 при успехе, 404 если
// записи не было. Удаление окончательное, код освобождается.
func (h *Handler) DeleteAlias(c *gin.Context) {
	deleted, err := h.Service.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no such alias"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Ping хэндлер, проверяет доступность хранилища.
func (h *Handler) Ping(c *gin.Context) {
	if err := h.Service.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage unavailable"})
		return
	}
	c.Status(http.StatusOK)
}

// writeError переводит ошибки сервиса в HTTP статусы: NotFound — 404,
// ошибки валидации — 400, все остальное — 500 без деталей хранилища.
func (h *Handler) writeError(c *gin.Context, err error) {
	var notFound *dbstorage.ErrNotFound
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no such alias"})
		return
	}

	var validation *service.ErrValidation
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.Reason})
		return
	}

	logger.Log.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error, try again"})
}
