package engine

import (
	"time"

	"boingle/internal/config"
	"boingle/internal/physics"
)

// Config хранит параметры запуска сессии
type Config struct {
	// Seed - мастер-зерно. От него зависит весь рандом забега:
	// колода, монеты, пушка, магазин.
	Seed    int64
	Balance config.Balance
	// Debug - нарушения инвариантов паникуют, а не только логируются.
	Debug bool
	// Physics - внешний физический движок. nil - встроенная Arena.
	Physics physics.Engine
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig(balance config.Balance) Config {
	return Config{
		Seed:    time.Now().UnixNano(),
		Balance: balance,
	}
}

// FromAppConfig переносит настройки приложения в конфиг сессии.
// Сид 0 в настройках означает "случайный".
func FromAppConfig(app config.Config) Config {
	cfg := NewConfig(app.Balance)
	if app.Seed != 0 {
		cfg.Seed = app.Seed
	}
	cfg.Debug = app.Debug
	return cfg
}
