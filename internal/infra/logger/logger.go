package logger

import (
	"log/slog"
	"os"
)

// New — JSON-логгер с уровнем по окружению и меткой бинарника:
// демон и админ-утилита пишут в один поток, источник должен быть виден.
func New(env, service string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}
