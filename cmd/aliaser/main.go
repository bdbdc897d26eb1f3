package main

import (
	"github.com/MaxRadzey/aliaser/internal/app"
	"github.com/MaxRadzey/aliaser/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	// .env опционален, его отсутствие не ошибка
	_ = godotenv.Load()

	appConfig := config.New()
	config.ParseEnv(appConfig)
	ParseFlag(appConfig)

	if err := app.Run(appConfig); err != nil {
		panic(err)
	}
}
