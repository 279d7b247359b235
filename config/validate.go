package config

import (
	"fmt"
	"net/url"
)

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.MaxConns <= 0 {
		return fmt.Errorf("database max conns must be positive: %d", config.Database.MaxConns)
	}

	if config.Database.MinConns < 0 || config.Database.MinConns > config.Database.MaxConns {
		return fmt.Errorf("database min conns must be between 0 and max conns: %d", config.Database.MinConns)
	}

	for name, raw := range map[string]string{
		"metadata base URL": config.Metadata.BaseURL,
		"tile CDN base URL": config.Tiles.BaseURL,
		"OCR host":          config.OCR.Host,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if config.Metadata.Timeout <= 0 {
		return fmt.Errorf("metadata timeout must be positive: %v", config.Metadata.Timeout)
	}

	if config.Tiles.ProbeTimeout <= 0 || config.Tiles.FetchTimeout <= 0 {
		return fmt.Errorf("tile timeouts must be positive: probe=%v fetch=%v", config.Tiles.ProbeTimeout, config.Tiles.FetchTimeout)
	}

	if config.Tiles.BatchDelayMin < 0 || config.Tiles.BatchDelayMax < config.Tiles.BatchDelayMin {
		return fmt.Errorf("tile batch delay range is invalid: %v-%v", config.Tiles.BatchDelayMin, config.Tiles.BatchDelayMax)
	}

	if config.Image.MaxPageDimension < 256 {
		return fmt.Errorf("max page dimension must be at least 256: %d", config.Image.MaxPageDimension)
	}

	if config.Image.JPEGQuality < 1 || config.Image.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100: %d", config.Image.JPEGQuality)
	}

	if config.Upload.Enabled {
		if err := validateURL(config.Upload.Endpoint); err != nil {
			return fmt.Errorf("upload endpoint required when UPLOAD_ENABLED is true: %w", err)
		}
	}

	if config.Upload.MaxRetries < 0 {
		return fmt.Errorf("upload max retries must be non-negative: %d", config.Upload.MaxRetries)
	}

	if config.OCR.Model == "" {
		return fmt.Errorf("OCR model cannot be empty")
	}

	if config.OCR.Timeout <= 0 {
		return fmt.Errorf("OCR timeout must be positive: %v", config.OCR.Timeout)
	}

	if config.OCR.Interval <= 0 {
		return fmt.Errorf("OCR interval must be positive: %v", config.OCR.Interval)
	}

	if config.Enrich.Enabled {
		if err := validateURL(config.Enrich.BaseURL); err != nil {
			return fmt.Errorf("invalid enrich base URL: %w", err)
		}
		if config.Enrich.CacheSize <= 0 {
			return fmt.Errorf("enrich cache size must be positive: %d", config.Enrich.CacheSize)
		}
	}

	if config.Ingest.MaxConcurrentZip <= 0 {
		return fmt.Errorf("max concurrent zip must be positive: %d", config.Ingest.MaxConcurrentZip)
	}

	if config.Ingest.InterFlyerDelay < 0 {
		return fmt.Errorf("inter flyer delay must be non-negative: %v", config.Ingest.InterFlyerDelay)
	}

	if config.Ingest.Interval <= 0 || config.Ingest.JobTimeout <= 0 {
		return fmt.Errorf("ingest interval and job timeout must be positive: interval=%v timeout=%v", config.Ingest.Interval, config.Ingest.JobTimeout)
	}

	switch config.JobStatus.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown job status backend: %q", config.JobStatus.Backend)
	}

	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must be absolute: %s", raw)
	}
	return nil
}
