package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host          string
	Port          int
	AllowOrigins  []string
	LogLevel      string
	LogFile       string // empty disables the file sink
	LogJSON       bool
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	MaxUploadMB   int
	UploadTTL     time.Duration // dataset lifetime after upload
	SweepInterval time.Duration
	CacheMaxItems int
	CacheTTL      time.Duration
	MatchMode     string // cascade | strict
}

func Load() Config {
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	logFile := getenv("LOG_FILE", "logs/parts-finder.log")
	if strings.EqualFold(logFile, "off") {
		logFile = ""
	}
	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          getint("PORT", 8082),
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFile:       logFile,
		LogJSON:       getbool("LOG_JSON", false),
		LogMaxSizeMB:  getint("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getint("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getint("LOG_MAX_AGE_DAYS", 30),
		MaxUploadMB:   getint("MAX_UPLOAD_MB", 10),
		UploadTTL:     getduration("UPLOAD_TTL", time.Hour),
		SweepInterval: getduration("SWEEP_INTERVAL", 5*time.Minute),
		CacheMaxItems: getint("CACHE_MAX_ITEMS", 100),
		CacheTTL:      getduration("CACHE_TTL", time.Hour),
		MatchMode:     getenv("MATCH_MODE", "cascade"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return i
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(k, ""))
	if err != nil {
		return def
	}
	return d
}
