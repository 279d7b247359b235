package config

import "time"

// Config aggregates all service configuration blocks.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	HTTP      HTTPConfig      `json:"http"`
	Metadata  MetadataConfig  `json:"metadata"`
	Tiles     TileConfig      `json:"tiles"`
	Image     ImageConfig     `json:"image"`
	Upload    UploadConfig    `json:"upload"`
	OCR       OCRConfig       `json:"ocr"`
	Enrich    EnrichConfig    `json:"enrich"`
	Ingest    IngestConfig    `json:"ingest"`
	Metrics   MetricsConfig   `json:"metrics"`
	JobStatus JobStatusConfig `json:"job_status"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9300"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	URL             string        `json:"-" env:"DATABASE_URL"`
	MaxConns        int           `json:"max_conns" env:"DB_MAX_CONNS" default:"5"`
	MinConns        int           `json:"min_conns" env:"DB_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `json:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" default:"30m"`
}

type RedisConfig struct {
	URL string `json:"-" env:"REDIS_URL" default:"redis://localhost:6379/0"`
}

type HTTPConfig struct {
	UserAgent           string        `json:"user_agent" env:"HTTP_USER_AGENT" default:"flyer-ingest/1.0"`
	MaxIdleConns        int           `json:"max_idle_conns" env:"HTTP_MAX_IDLE_CONNS" default:"20"`
	MaxIdleConnsPerHost int           `json:"max_idle_conns_per_host" env:"HTTP_MAX_IDLE_CONNS_PER_HOST" default:"10"`
	IdleConnTimeout     time.Duration `json:"idle_conn_timeout" env:"HTTP_IDLE_CONN_TIMEOUT" default:"90s"`
}

type MetadataConfig struct {
	BaseURL string        `json:"base_url" env:"FLYER_METADATA_BASE_URL" default:"https://backflipp.wishabi.com/flipp"`
	Locale  string        `json:"locale" env:"FLYER_METADATA_LOCALE" default:"en-us"`
	Timeout time.Duration `json:"timeout" env:"FLYER_METADATA_TIMEOUT" default:"15s"`
}

type TileConfig struct {
	BaseURL       string        `json:"base_url" env:"TILE_CDN_BASE_URL" default:"https://f.wishabi.net"`
	ProbeTimeout  time.Duration `json:"probe_timeout" env:"TILE_PROBE_TIMEOUT" default:"3s"`
	FetchTimeout  time.Duration `json:"fetch_timeout" env:"TILE_FETCH_TIMEOUT" default:"10s"`
	BatchDelayMin time.Duration `json:"batch_delay_min" env:"TILE_BATCH_DELAY_MIN" default:"100ms"`
	BatchDelayMax time.Duration `json:"batch_delay_max" env:"TILE_BATCH_DELAY_MAX" default:"200ms"`
}

type ImageConfig struct {
	MaxPageDimension int `json:"max_page_dimension" env:"IMAGE_MAX_PAGE_DIMENSION" default:"4096"`
	JPEGQuality      int `json:"jpeg_quality" env:"IMAGE_JPEG_QUALITY" default:"85"`
}

type UploadConfig struct {
	Enabled    bool          `json:"enabled" env:"UPLOAD_ENABLED" default:"false"`
	Endpoint   string        `json:"endpoint" env:"UPLOAD_ENDPOINT"`
	APIKey     string        `json:"-" env:"UPLOAD_API_KEY"`
	Preset     string        `json:"preset" env:"UPLOAD_PRESET" default:"flyers"`
	Timeout    time.Duration `json:"timeout" env:"UPLOAD_TIMEOUT" default:"30s"`
	MaxRetries int           `json:"max_retries" env:"UPLOAD_MAX_RETRIES" default:"2"`
	RetryDelay time.Duration `json:"retry_delay" env:"UPLOAD_RETRY_DELAY" default:"1s"`
}

type OCRConfig struct {
	Host      string        `json:"host" env:"OCR_HOST" default:"https://api.openai.com"`
	APIPath   string        `json:"api_path" env:"OCR_API_PATH" default:"/v1/chat/completions"`
	APIKey    string        `json:"-" env:"OCR_API_KEY"`
	Model     string        `json:"model" env:"OCR_MODEL" default:"gpt-4o-mini"`
	MaxTokens int           `json:"max_tokens" env:"OCR_MAX_TOKENS" default:"4096"`
	Timeout   time.Duration `json:"timeout" env:"OCR_TIMEOUT" default:"30s"`
	Interval  time.Duration `json:"interval" env:"OCR_INTERVAL" default:"600ms"`
}

type EnrichConfig struct {
	Enabled   bool          `json:"enabled" env:"ENRICH_ENABLED" default:"true"`
	BaseURL   string        `json:"base_url" env:"ENRICH_BASE_URL" default:"https://world.openfoodfacts.org"`
	Timeout   time.Duration `json:"timeout" env:"ENRICH_TIMEOUT" default:"5s"`
	Interval  time.Duration `json:"interval" env:"ENRICH_INTERVAL" default:"150ms"`
	CacheSize int           `json:"cache_size" env:"ENRICH_CACHE_SIZE" default:"2048"`
}

type IngestConfig struct {
	ZipCodes         []string      `json:"zip_codes" env:"INGEST_ZIP_CODES"`
	GroceryChains    []string      `json:"grocery_chains" env:"INGEST_GROCERY_CHAINS"`
	MaxConcurrentZip int           `json:"max_concurrent_zip" env:"INGEST_MAX_CONCURRENT_ZIP" default:"2"`
	InterFlyerDelay  time.Duration `json:"inter_flyer_delay" env:"INGEST_INTER_FLYER_DELAY" default:"2s"`
	Interval         time.Duration `json:"interval" env:"INGEST_INTERVAL" default:"24h"`
	JobTimeout       time.Duration `json:"job_timeout" env:"INGEST_JOB_TIMEOUT" default:"2h"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"METRICS_ENABLED" default:"true"`
	Path    string `json:"path" env:"METRICS_PATH" default:"/metrics"`
}

type JobStatusConfig struct {
	Backend string        `json:"backend" env:"JOB_STATUS_BACKEND" default:"memory"`
	TTL     time.Duration `json:"ttl" env:"JOB_STATUS_TTL" default:"168h"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9300,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
		},
		HTTP: HTTPConfig{
			UserAgent:           "flyer-ingest/1.0",
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Metadata: MetadataConfig{
			BaseURL: "https://backflipp.wishabi.com/flipp",
			Locale:  "en-us",
			Timeout: 15 * time.Second,
		},
		Tiles: TileConfig{
			BaseURL:       "https://f.wishabi.net",
			ProbeTimeout:  3 * time.Second,
			FetchTimeout:  10 * time.Second,
			BatchDelayMin: 100 * time.Millisecond,
			BatchDelayMax: 200 * time.Millisecond,
		},
		Image: ImageConfig{
			MaxPageDimension: 4096,
			JPEGQuality:      85,
		},
		Upload: UploadConfig{
			Enabled:    false,
			Preset:     "flyers",
			Timeout:    30 * time.Second,
			MaxRetries: 2,
			RetryDelay: 1 * time.Second,
		},
		OCR: OCRConfig{
			Host:      "https://api.openai.com",
			APIPath:   "/v1/chat/completions",
			Model:     "gpt-4o-mini",
			MaxTokens: 4096,
			Timeout:   30 * time.Second,
			Interval:  600 * time.Millisecond,
		},
		Enrich: EnrichConfig{
			Enabled:   true,
			BaseURL:   "https://world.openfoodfacts.org",
			Timeout:   5 * time.Second,
			Interval:  150 * time.Millisecond,
			CacheSize: 2048,
		},
		Ingest: IngestConfig{
			GroceryChains:    defaultGroceryChains(),
			MaxConcurrentZip: 2,
			InterFlyerDelay:  2 * time.Second,
			Interval:         24 * time.Hour,
			JobTimeout:       2 * time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		JobStatus: JobStatusConfig{
			Backend: "memory",
			TTL:     7 * 24 * time.Hour,
		},
	}
}

func defaultGroceryChains() []string {
	return []string{
		"ShopRite",
		"Stop & Shop",
		"ACME",
		"Wegmans",
		"Whole Foods",
		"Aldi",
		"Lidl",
		"Key Food",
		"Foodtown",
		"Food Lion",
		"Giant",
		"Kroger",
		"Safeway",
		"Publix",
		"H Mart",
		"Trader Joe",
		"Sprouts",
		"Weis",
		"Hannaford",
		"Price Rite",
	}
}
