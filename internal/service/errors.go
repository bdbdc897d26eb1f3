package service

import "fmt"

// ErrValidation представляет ошибку валидации входных данных.
type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// ErrCodeSpaceExhausted — все попытки сгенерировать уникальный код исчерпаны.
// При 62^2 вариантах случайного суффикса это практически невозможно и
// означает проблему с хранилищем или генератором, а не честную коллизию.
type ErrCodeSpaceExhausted struct {
	Attempts int
}

func (e *ErrCodeSpaceExhausted) Error() string {
	return fmt.Sprintf("failed to generate unique code after %d attempts", e.Attempts)
}
