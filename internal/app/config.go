package app

import (
	"github.com/yungbote/researchgraph-backend/internal/platform/envutil"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

type Config struct {
	Port          string
	MigrationsDir string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:          envutil.Str("PORT", "8080"),
		MigrationsDir: envutil.Str("MIGRATIONS_DIR", "migrations"),
	}
	log.Info("config loaded", "port", cfg.Port)
	return cfg
}
