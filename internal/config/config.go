package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gbillga/lol-history-parser/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type Config struct {
	APIKey          string
	AutoRefreshUser bool
	AccountListPath string
	DataDir         string
	DBPath          string
	LogLevel        string
	DVCSync         bool
	DVCRemote       string
	ExportXLSX      bool
}

// Load runs before the configured logger exists, so it logs through a
// bootstrap logger at the default level.
func Load() (*Config, error) {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	dataDir := getEnv("DATA_DIR", "data")

	cfg := &Config{
		APIKey:          getEnv("API_KEY", ""),
		AutoRefreshUser: getEnv("AUTO_REFRESH_USER", "") == "1",
		AccountListPath: getEnv("ACCOUNT_LIST", "account_list.json"),
		DataDir:         dataDir,
		DBPath:          getEnv("DB_PATH", filepath.Join(dataDir, "rfd", "lol_history.db")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DVCSync:         getEnv("DVC_SYNC", "1") != "0",
		DVCRemote:       getEnv("DVC_REMOTE", ""),
		ExportXLSX:      getEnv("EXPORT_XLSX", "") == "1",
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	log.Info().
		Str("account_list", cfg.AccountListPath).
		Str("data_dir", cfg.DataDir).
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Bool("auto_refresh_user", cfg.AutoRefreshUser).
		Bool("dvc_sync", cfg.DVCSync).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
