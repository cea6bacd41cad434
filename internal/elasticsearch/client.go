// Package elasticsearch wraps the Elasticsearch client with the index and
// document operations the sync pipeline needs.
package elasticsearch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
)

// Client wraps the Elasticsearch client with index management operations.
type Client struct {
	esClient *es.Client
	config   *Config
}

// Config holds Elasticsearch configuration.
type Config struct {
	URL        string
	Username   string
	Password   string
	MaxRetries int
	Timeout    time.Duration
}

// NewClient creates a new Elasticsearch client and verifies connectivity.
func NewClient(cfg *Config) (*Client, error) {
	addresses := []string{cfg.URL}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		addresses = []string{"http://" + cfg.URL}
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
	}

	clientConfig := es.Config{
		Addresses:  addresses,
		Transport:  transport,
		MaxRetries: cfg.MaxRetries,
	}

	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	esClient, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := esClient.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return &Client{
		esClient: esClient,
		config:   cfg,
	}, nil
}

// GetClient returns the underlying Elasticsearch client.
func (c *Client) GetClient() *es.Client {
	return c.esClient
}

// CreateIndex creates a new index with the specified body (settings and
// mappings).
func (c *Client) CreateIndex(ctx context.Context, indexName string, body any) error {
	exists, err := c.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return fmt.Errorf("index %s already exists", indexName)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal index body: %w", marshalErr)
		}
		bodyReader = strings.NewReader(string(bodyBytes))
	}

	res, err := c.esClient.Indices.Create(
		indexName,
		c.esClient.Indices.Create.WithBody(bodyReader),
		c.esClient.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		resBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(resBody))
	}

	return nil
}

// EnsureIndex ensures an index exists, creating it if it doesn't. An
// existing index is never recreated.
func (c *Client) EnsureIndex(ctx context.Context, indexName string, body any) error {
	exists, err := c.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	return c.CreateIndex(ctx, indexName, body)
}

// DeleteIndex deletes an index.
func (c *Client) DeleteIndex(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.Delete([]string{indexName}, c.esClient.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error deleting index: %s", string(body))
	}

	return nil
}

// IndexExists checks if an index exists.
func (c *Client) IndexExists(ctx context.Context, indexName string) (bool, error) {
	res, err := c.esClient.Indices.Exists([]string{indexName}, c.esClient.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, fmt.Errorf("error checking index existence: %s", res.String())
	}

	return true, nil
}

// IndexInfo holds the summary row for one index.
type IndexInfo struct {
	Name          string `json:"index"`
	Health        string `json:"health"`
	Status        string `json:"status"`
	DocumentCount string `json:"docs.count"`
	Size          string `json:"store.size"`
}

// ListIndices lists all non-system indices matching the pattern.
func (c *Client) ListIndices(ctx context.Context, pattern string) ([]IndexInfo, error) {
	if pattern == "" {
		pattern = "*"
	}

	res, err := c.esClient.Cat.Indices(
		c.esClient.Cat.Indices.WithIndex(pattern),
		c.esClient.Cat.Indices.WithContext(ctx),
		c.esClient.Cat.Indices.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error listing indices: %s", string(body))
	}

	var results []IndexInfo
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	indices := make([]IndexInfo, 0, len(results))
	for _, result := range results {
		if !strings.HasPrefix(result.Name, ".") {
			indices = append(indices, result)
		}
	}

	return indices, nil
}
