// Package bootstrap handles shared initialization for the CLI commands:
// configuration, logging, and the external collaborators.
package bootstrap

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/plan4land/tourindex/internal/config"
	"github.com/plan4land/tourindex/internal/elasticsearch"
	"github.com/plan4land/tourindex/internal/logger"
	"github.com/plan4land/tourindex/internal/metrics"
	"github.com/plan4land/tourindex/internal/pipeline"
	"github.com/plan4land/tourindex/internal/tourapi"
)

// LoadConfig loads and validates configuration.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.GetConfigPath("config.yml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// SetupElasticsearch creates an Elasticsearch client.
func SetupElasticsearch(cfg *config.Config) (*elasticsearch.Client, error) {
	esClient, err := elasticsearch.NewClient(&elasticsearch.Config{
		URL:        cfg.Elasticsearch.URL,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
		Timeout:    cfg.Elasticsearch.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return esClient, nil
}

// NewPipeline wires the sync pipeline from its collaborators.
func NewPipeline(
	cfg *config.Config,
	esClient *elasticsearch.Client,
	registry *prometheus.Registry,
	log logger.Logger,
) *pipeline.Pipeline {
	source := tourapi.NewClient(tourapi.Config{
		BaseURL:        cfg.Source.BaseURL,
		ServiceKey:     cfg.Source.ServiceKey,
		MobileOS:       cfg.Source.MobileOS,
		MobileApp:      cfg.Source.MobileApp,
		PageSize:       cfg.Sync.PageSize,
		RequestTimeout: cfg.Source.RequestTimeout,
	}, log)

	sink := elasticsearch.NewSink(esClient, log)

	var pipelineMetrics *metrics.PipelineMetrics
	if registry != nil {
		pipelineMetrics = metrics.NewPipelineMetrics(registry)
	}

	return pipeline.New(source, sink, pipeline.Config{
		IndexName:     cfg.Sync.IndexName,
		PageSize:      cfg.Sync.PageSize,
		BulkBatchSize: cfg.Sync.BulkBatchSize,
		PageCooldown:  cfg.Sync.PageCooldown,
	}, log, pipelineMetrics)
}
