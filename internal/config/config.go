package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int              `json:"port"`
	LogConfig        logger.LogConfig `json:"log_config"`
	Database         DatabaseConfig   `json:"database"`
	Backends         []BackendConfig  `json:"backends"`
	Pipeline         PipelineConfig   `json:"pipeline"`
	Fetch            FetchConfig      `json:"fetch"`
	FileStore        FileStoreConfig  `json:"file_store"`
	Retention        RetentionConfig  `json:"retention"`
	CORSAllowlist    []string         `json:"cors_allowlist"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
	MaxUploadBytes   int64            `json:"max_upload_bytes"`
}

type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

// BackendConfig selects one summarization provider. Args is passed
// through to the provider factory untouched.
type BackendConfig struct {
	Provider string                 `json:"provider"`
	ModelID  string                 `json:"model_id"`
	Args     map[string]interface{} `json:"args"`
}

type PipelineConfig struct {
	ChunkSize           int     `json:"chunk_size"`
	ChunkOverlap        int     `json:"chunk_overlap"`
	MaxDepth            int     `json:"max_depth"`
	CompressionTarget   float64 `json:"compression_target"`
	CompressionAttempts int     `json:"compression_attempts"`
	CallRetries         int     `json:"call_retries"`
	MaxConcurrency      int     `json:"max_concurrency"`
	CallTimeoutSeconds  int     `json:"call_timeout_seconds"`
	MaxInputChars       int     `json:"max_input_chars"`
	CacheSize           int     `json:"cache_size"`
	CacheTTLMinutes     int     `json:"cache_ttl_minutes"`
}

type FetchConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxBodyBytes   int64  `json:"max_body_bytes"`
	UserAgent      string `json:"user_agent"`
}

type FileStoreConfig struct {
	Type      string   `json:"type"`
	Dir       string   `json:"dir"`
	PublicURL string   `json:"public_url"`
	S3        S3Config `json:"s3"`
}

type S3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	PublicURL string `json:"public_url"`
	UseSSL    bool   `json:"use_ssl"`
}

type RetentionConfig struct {
	HistoryDays int `json:"history_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	if len(cfg.Backends) == 0 {
		return nil, fmt.Errorf("at least one backend is required")
	}
	for i, b := range cfg.Backends {
		if b.Provider == "" {
			return nil, fmt.Errorf("backends[%d].provider is required", i)
		}
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Pipeline.MaxInputChars == 0 {
		cfg.Pipeline.MaxInputChars = 200000
	}
	if cfg.Pipeline.CacheSize == 0 {
		cfg.Pipeline.CacheSize = 256
	}
	if cfg.Pipeline.CacheTTLMinutes == 0 {
		cfg.Pipeline.CacheTTLMinutes = 60
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 20
	}
	if cfg.Fetch.MaxBodyBytes == 0 {
		cfg.Fetch.MaxBodyBytes = 8 << 20
	}
	if cfg.Retention.HistoryDays == 0 {
		cfg.Retention.HistoryDays = 90
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 16 << 20
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	switch cfg.FileStore.Type {
	case "local":
		if cfg.FileStore.Dir == "" {
			return nil, fmt.Errorf("file_store.dir is required for local store")
		}
	case "s3":
		if cfg.FileStore.S3.Endpoint == "" || cfg.FileStore.S3.Bucket == "" || cfg.FileStore.S3.SecretID == "" || cfg.FileStore.S3.SecretKey == "" {
			return nil, fmt.Errorf("file_store.s3 endpoint/bucket/secret_id/secret_key are required for s3 store")
		}
		if cfg.FileStore.S3.Region == "" {
			cfg.FileStore.S3.Region = "us-east-1"
		}
	default:
		return nil, fmt.Errorf("file_store.type must be local or s3")
	}
	return &cfg, nil
}
