package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig builds the configuration from defaults and overrides provided via environment variables.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	*config = *defaultConfig()

	if err := loadServerConfig(&config.Server); err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	if err := loadDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if url := os.Getenv("REDIS_URL"); url != "" {
		config.Redis.URL = url
	}

	if err := loadHTTPConfig(&config.HTTP); err != nil {
		return fmt.Errorf("failed to load HTTP config: %w", err)
	}

	if err := loadMetadataConfig(&config.Metadata); err != nil {
		return fmt.Errorf("failed to load metadata config: %w", err)
	}

	if err := loadTileConfig(&config.Tiles); err != nil {
		return fmt.Errorf("failed to load tile config: %w", err)
	}

	if err := loadImageConfig(&config.Image); err != nil {
		return fmt.Errorf("failed to load image config: %w", err)
	}

	if err := loadUploadConfig(&config.Upload); err != nil {
		return fmt.Errorf("failed to load upload config: %w", err)
	}

	if err := loadOCRConfig(&config.OCR); err != nil {
		return fmt.Errorf("failed to load OCR config: %w", err)
	}

	if err := loadEnrichConfig(&config.Enrich); err != nil {
		return fmt.Errorf("failed to load enrich config: %w", err)
	}

	if err := loadIngestConfig(&config.Ingest); err != nil {
		return fmt.Errorf("failed to load ingest config: %w", err)
	}

	if err := loadMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("failed to load metrics config: %w", err)
	}

	if err := loadJobStatusConfig(&config.JobStatus); err != nil {
		return fmt.Errorf("failed to load job status config: %w", err)
	}

	return nil
}

// loadServerConfig loads server configuration from environment variables
func loadServerConfig(cfg *ServerConfig) error {
	var err error

	if cfg.Port, err = parseIntEnv("SERVER_PORT", cfg.Port); err != nil {
		return err
	}

	if cfg.ShutdownTimeout, err = parseDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	return nil
}

func loadDatabaseConfig(cfg *DatabaseConfig) error {
	var err error

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.URL = url
	}

	if cfg.MaxConns, err = parseIntEnv("DB_MAX_CONNS", cfg.MaxConns); err != nil {
		return err
	}

	if cfg.MinConns, err = parseIntEnv("DB_MIN_CONNS", cfg.MinConns); err != nil {
		return err
	}

	if cfg.MaxConnLifetime, err = parseDurationEnv("DB_MAX_CONN_LIFETIME", cfg.MaxConnLifetime); err != nil {
		return err
	}

	return nil
}

func loadHTTPConfig(cfg *HTTPConfig) error {
	var err error

	if ua := os.Getenv("HTTP_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}

	if cfg.MaxIdleConns, err = parseIntEnv("HTTP_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return err
	}

	if cfg.MaxIdleConnsPerHost, err = parseIntEnv("HTTP_MAX_IDLE_CONNS_PER_HOST", cfg.MaxIdleConnsPerHost); err != nil {
		return err
	}

	if cfg.IdleConnTimeout, err = parseDurationEnv("HTTP_IDLE_CONN_TIMEOUT", cfg.IdleConnTimeout); err != nil {
		return err
	}

	return nil
}

func loadMetadataConfig(cfg *MetadataConfig) error {
	var err error

	if baseURL := os.Getenv("FLYER_METADATA_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if locale := os.Getenv("FLYER_METADATA_LOCALE"); locale != "" {
		cfg.Locale = locale
	}

	if cfg.Timeout, err = parseDurationEnv("FLYER_METADATA_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	return nil
}

func loadTileConfig(cfg *TileConfig) error {
	var err error

	if baseURL := os.Getenv("TILE_CDN_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if cfg.ProbeTimeout, err = parseDurationEnv("TILE_PROBE_TIMEOUT", cfg.ProbeTimeout); err != nil {
		return err
	}

	if cfg.FetchTimeout, err = parseDurationEnv("TILE_FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return err
	}

	if cfg.BatchDelayMin, err = parseDurationEnv("TILE_BATCH_DELAY_MIN", cfg.BatchDelayMin); err != nil {
		return err
	}

	if cfg.BatchDelayMax, err = parseDurationEnv("TILE_BATCH_DELAY_MAX", cfg.BatchDelayMax); err != nil {
		return err
	}

	return nil
}

func loadImageConfig(cfg *ImageConfig) error {
	var err error

	if cfg.MaxPageDimension, err = parseIntEnv("IMAGE_MAX_PAGE_DIMENSION", cfg.MaxPageDimension); err != nil {
		return err
	}

	if cfg.JPEGQuality, err = parseIntEnv("IMAGE_JPEG_QUALITY", cfg.JPEGQuality); err != nil {
		return err
	}

	return nil
}

func loadUploadConfig(cfg *UploadConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("UPLOAD_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if endpoint := os.Getenv("UPLOAD_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if key := os.Getenv("UPLOAD_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if preset := os.Getenv("UPLOAD_PRESET"); preset != "" {
		cfg.Preset = preset
	}

	if cfg.Timeout, err = parseDurationEnv("UPLOAD_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.MaxRetries, err = parseIntEnv("UPLOAD_MAX_RETRIES", cfg.MaxRetries); err != nil {
		return err
	}

	if cfg.RetryDelay, err = parseDurationEnv("UPLOAD_RETRY_DELAY", cfg.RetryDelay); err != nil {
		return err
	}

	return nil
}

func loadOCRConfig(cfg *OCRConfig) error {
	var err error

	if host := os.Getenv("OCR_HOST"); host != "" {
		cfg.Host = host
	}

	if path := os.Getenv("OCR_API_PATH"); path != "" {
		cfg.APIPath = path
	}

	if key := os.Getenv("OCR_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if model := os.Getenv("OCR_MODEL"); model != "" {
		cfg.Model = model
	}

	if cfg.MaxTokens, err = parseIntEnv("OCR_MAX_TOKENS", cfg.MaxTokens); err != nil {
		return err
	}

	if cfg.Timeout, err = parseDurationEnv("OCR_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.Interval, err = parseDurationEnv("OCR_INTERVAL", cfg.Interval); err != nil {
		return err
	}

	return nil
}

func loadEnrichConfig(cfg *EnrichConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("ENRICH_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if baseURL := os.Getenv("ENRICH_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if cfg.Timeout, err = parseDurationEnv("ENRICH_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.Interval, err = parseDurationEnv("ENRICH_INTERVAL", cfg.Interval); err != nil {
		return err
	}

	if cfg.CacheSize, err = parseIntEnv("ENRICH_CACHE_SIZE", cfg.CacheSize); err != nil {
		return err
	}

	return nil
}

func loadIngestConfig(cfg *IngestConfig) error {
	var err error

	if zips := os.Getenv("INGEST_ZIP_CODES"); zips != "" {
		cfg.ZipCodes = splitList(zips)
	}

	if chains := os.Getenv("INGEST_GROCERY_CHAINS"); chains != "" {
		cfg.GroceryChains = splitList(chains)
	}

	if cfg.MaxConcurrentZip, err = parseIntEnv("INGEST_MAX_CONCURRENT_ZIP", cfg.MaxConcurrentZip); err != nil {
		return err
	}

	if cfg.InterFlyerDelay, err = parseDurationEnv("INGEST_INTER_FLYER_DELAY", cfg.InterFlyerDelay); err != nil {
		return err
	}

	if cfg.Interval, err = parseDurationEnv("INGEST_INTERVAL", cfg.Interval); err != nil {
		return err
	}

	if cfg.JobTimeout, err = parseDurationEnv("INGEST_JOB_TIMEOUT", cfg.JobTimeout); err != nil {
		return err
	}

	return nil
}

func loadMetricsConfig(cfg *MetricsConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("METRICS_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if path := os.Getenv("METRICS_PATH"); path != "" {
		cfg.Path = path
	}

	return nil
}

func loadJobStatusConfig(cfg *JobStatusConfig) error {
	var err error

	if backend := os.Getenv("JOB_STATUS_BACKEND"); backend != "" {
		cfg.Backend = strings.ToLower(backend)
	}

	if cfg.TTL, err = parseDurationEnv("JOB_STATUS_TTL", cfg.TTL); err != nil {
		return err
	}

	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return i, nil
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return b, nil
	}
	return defaultValue, nil
}
