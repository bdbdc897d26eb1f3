package models

import (
	"time"

	"github.com/MaxRadzey/aliaser/internal/storage"
)

// AliasRequest — тело запроса на создание или обновление записи.
type AliasRequest struct {
	URL string `json:"url"`
}

// AliasResponse — представление записи в ответах API.
type AliasResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	AccessCount int64     `json:"accessCount"`
}

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAliasResponse собирает AliasResponse из записи хранилища.
func NewAliasResponse(alias *storage.Alias) AliasResponse {
	return AliasResponse{
		ID:          alias.ID,
		URL:         alias.TargetURL,
		Code:        alias.Code,
		CreatedAt:   alias.CreatedAt,
		UpdatedAt:   alias.UpdatedAt,
		AccessCount: alias.AccessCount,
	}
}
