package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service:
  name: tourindex
  port: 9000
source:
  service_key: file-key
  mobile_app: Plan4Land
elasticsearch:
  url: http://es:9200
sync:
  index_name: tour_spots_test
  page_size: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "tourindex", cfg.Service.Name)
	require.Equal(t, 9000, cfg.Service.Port)
	require.Equal(t, "file-key", cfg.Source.ServiceKey)
	require.Equal(t, "http://es:9200", cfg.Elasticsearch.URL)
	require.Equal(t, "tour_spots_test", cfg.Sync.IndexName)
	require.Equal(t, 50, cfg.Sync.PageSize)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  service_key: file-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 8091, cfg.Service.Port)
	require.Equal(t, "http://apis.data.go.kr/B551011/KorService1", cfg.Source.BaseURL)
	require.Equal(t, "ETC", cfg.Source.MobileOS)
	require.Equal(t, "Plan4Land", cfg.Source.MobileApp)
	require.Equal(t, "tour_spots", cfg.Sync.IndexName)
	require.Equal(t, 200, cfg.Sync.PageSize)
	require.Equal(t, 2000, cfg.Sync.BulkBatchSize)
	require.Equal(t, 2*time.Second, cfg.Sync.PageCooldown)
	require.Equal(t, "0 3 * * *", cfg.Scheduler.Schedule)
	require.InEpsilon(t, 0.7, cfg.Recommender.Threshold, 1e-9)
	require.Equal(t, 10, cfg.Recommender.TopN)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
source:
  service_key: file-key
elasticsearch:
  url: http://file:9200
`)

	t.Setenv("TOUR_API_SERVICE_KEY", "env-key")
	t.Setenv("ELASTICSEARCH_URL", "http://env:9200")
	t.Setenv("TOURINDEX_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "env-key", cfg.Source.ServiceKey)
	require.Equal(t, "http://env:9200", cfg.Elasticsearch.URL)
	require.Equal(t, 9100, cfg.Service.Port)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(writeConfig(t, `
source:
  service_key: file-key
`))
		require.NoError(t, err)
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing service key", func(t *testing.T) {
		cfg := valid()
		cfg.Source.ServiceKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "source.service_key")
	})

	t.Run("missing elasticsearch url", func(t *testing.T) {
		cfg := valid()
		cfg.Elasticsearch.URL = ""
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "elasticsearch.url")
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Service.Port = 70000
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "service.port")
	})
}

func TestGetConfigPath(t *testing.T) {
	require.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/tourindex/config.yml")
	require.Equal(t, "/etc/tourindex/config.yml", GetConfigPath("config.yml"))
}
