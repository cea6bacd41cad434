package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName    = "tourindex"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8091
	defaultSourceURL      = "http://apis.data.go.kr/B551011/KorService1"
	defaultMobileOS       = "ETC"
	defaultMobileApp      = "Plan4Land"
	defaultRequestTimeout = 30 * time.Second
	defaultESURL          = "http://localhost:9200"
	defaultESMaxRetries   = 3
	defaultESTimeoutSec   = 30
	defaultIndexName      = "tour_spots"
	defaultPageSize       = 200
	defaultBulkBatchSize  = 2000
	defaultPageCooldown   = 2 * time.Second
	defaultCronSchedule   = "0 3 * * *"
	defaultScorerTimeout  = 10 * time.Second
	defaultScoreThreshold = 0.7
	defaultTopN           = 10
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// Config holds the application configuration.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Source        SourceConfig        `yaml:"source"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Sync          SyncConfig          `yaml:"sync"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Recommender   RecommenderConfig   `yaml:"recommender"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServiceConfig holds service identity and ops server configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TOURINDEX_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"      yaml:"debug"`
}

// SourceConfig holds catalog source API configuration.
type SourceConfig struct {
	BaseURL        string        `env:"TOUR_API_BASE_URL"    yaml:"base_url"`
	ServiceKey     string        `env:"TOUR_API_SERVICE_KEY" yaml:"service_key"`
	MobileOS       string        `yaml:"mobile_os"`
	MobileApp      string        `yaml:"mobile_app"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ElasticsearchConfig holds Elasticsearch configuration.
type ElasticsearchConfig struct {
	URL        string        `env:"ELASTICSEARCH_URL" yaml:"url"`
	Username   string        `yaml:"username"`
	Password   string        `env:"ELASTIC_PASSWORD"  yaml:"password"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// SyncConfig holds catalog sync pipeline configuration.
type SyncConfig struct {
	IndexName     string        `yaml:"index_name"`
	PageSize      int           `yaml:"page_size"`
	BulkBatchSize int           `yaml:"bulk_batch_size"`
	PageCooldown  time.Duration `yaml:"page_cooldown"`
}

// SchedulerConfig holds the daily incremental sync schedule.
type SchedulerConfig struct {
	Schedule string `env:"TOURINDEX_SCHEDULE" yaml:"schedule"`
}

// RecommenderConfig holds destination scorer service configuration.
type RecommenderConfig struct {
	URL       string        `env:"SCORER_URL" yaml:"url"`
	Threshold float64       `yaml:"threshold"`
	TopN      int           `yaml:"top_n"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)
	// Env always wins, including over defaults
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setSourceDefaults(&cfg.Source)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setSyncDefaults(&cfg.Sync)
	setSchedulerDefaults(&cfg.Scheduler)
	setRecommenderDefaults(&cfg.Recommender)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setSourceDefaults(s *SourceConfig) {
	if s.BaseURL == "" {
		s.BaseURL = defaultSourceURL
	}
	if s.MobileOS == "" {
		s.MobileOS = defaultMobileOS
	}
	if s.MobileApp == "" {
		s.MobileApp = defaultMobileApp
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = defaultRequestTimeout
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.URL == "" {
		e.URL = defaultESURL
	}
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Timeout == 0 {
		e.Timeout = defaultESTimeoutSec * time.Second
	}
}

func setSyncDefaults(s *SyncConfig) {
	if s.IndexName == "" {
		s.IndexName = defaultIndexName
	}
	if s.PageSize == 0 {
		s.PageSize = defaultPageSize
	}
	if s.BulkBatchSize == 0 {
		s.BulkBatchSize = defaultBulkBatchSize
	}
	if s.PageCooldown == 0 {
		s.PageCooldown = defaultPageCooldown
	}
}

func setSchedulerDefaults(s *SchedulerConfig) {
	if s.Schedule == "" {
		s.Schedule = defaultCronSchedule
	}
}

func setRecommenderDefaults(r *RecommenderConfig) {
	if r.Threshold == 0 {
		r.Threshold = defaultScoreThreshold
	}
	if r.TopN == 0 {
		r.TopN = defaultTopN
	}
	if r.Timeout == 0 {
		r.Timeout = defaultScorerTimeout
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Source.BaseURL == "" {
		return &ValidationError{Field: "source.base_url", Message: "is required"}
	}
	if c.Source.ServiceKey == "" {
		return &ValidationError{Field: "source.service_key", Message: "is required"}
	}
	if c.Elasticsearch.URL == "" {
		return &ValidationError{Field: "elasticsearch.url", Message: "is required"}
	}
	if c.Sync.IndexName == "" {
		return &ValidationError{Field: "sync.index_name", Message: "is required"}
	}
	return nil
}
