package main

import (
	"flag"

	"github.com/MaxRadzey/aliaser/internal/config"
)

func ParseFlag(config *config.Config) {
	flag.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	flag.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL connection DSN")
	flag.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address for the cache layer")
	flag.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	flag.Parse()
}
