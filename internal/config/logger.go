package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger builds the process logger: stdout (pretty unless LOG_JSON) plus
// a rotated file when LOG_FILE is set. It also replaces the global log.Logger.
func SetupLogger(cfg Config) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg.LogJSON {
		out = os.Stdout
	}
	if cfg.LogFile != "" {
		out = zerolog.MultiLevelWriter(out, rotatingFile(cfg))
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.LogLevel))
	logger := zerolog.New(out).With().Timestamp().Str("svc", "parts-finder").Logger()
	log.Logger = logger
	return logger
}

func rotatingFile(cfg Config) *lumberjack.Logger {
	_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
}

// unknown levels fall back to info
func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
