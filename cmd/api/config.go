package main

import (
	"encoding/json"
	"os"
	"time"
)

type Config struct {
	HttpPort         int           `json:"http_port"`
	DbConnString     string        `json:"db_conn_string"`
	RedisAddr        string        `json:"redis_addr"`
	ProviderUrl      string        `json:"provider_url"`
	ProviderApiKey   string        `json:"provider_api_key"`
	StoreMaxRetry    int           `json:"store_max_retry"`
	SweepIntervalStr string        `json:"sweep_interval"`
	SweepInterval    time.Duration `json:"-"`
	CatalogTtlStr    string        `json:"catalog_ttl"`
	CatalogTtl       time.Duration `json:"-"`
}

// ReadConfigJson reads json formatted configuration from the given file.
// Secrets and connection endpoints can be overridden from the environment
// so they never have to live in the file.
func ReadConfigJson(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)

	if err = json.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	if key := os.Getenv("SMSHUB_API_KEY"); key != "" {
		cfg.ProviderApiKey = key
	}
	if dbUrl := os.Getenv("DATABASE_URL"); dbUrl != "" {
		cfg.DbConnString = dbUrl
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}

	cfg.SweepInterval, err = time.ParseDuration(cfg.SweepIntervalStr)
	if err != nil {
		return nil, err
	}

	cfg.CatalogTtl, err = time.ParseDuration(cfg.CatalogTtlStr)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
