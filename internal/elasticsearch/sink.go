package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/plan4land/tourindex/internal/domain"
	"github.com/plan4land/tourindex/internal/elasticsearch/mappings"
	"github.com/plan4land/tourindex/internal/logger"
)

// Timeout durations for sink operations.
const (
	DefaultBulkTimeout  = 30 * time.Second
	DefaultIndexTimeout = 10 * time.Second
)

// BulkFailure identifies one document that failed within a bulk batch.
type BulkFailure struct {
	DocumentID string
	Reason     string
}

// Sink writes enriched records into an Elasticsearch index, either in bulk
// batches or as individual upserts keyed by document id.
type Sink struct {
	client *Client
	logger logger.Logger
}

// NewSink creates a new index sink.
func NewSink(client *Client, log logger.Logger) *Sink {
	return &Sink{
		client: client,
		logger: log,
	}
}

// EnsureIndex creates the tour spot index if it does not exist. An
// existing index is left untouched.
func (s *Sink) EnsureIndex(ctx context.Context, index string) error {
	return s.client.EnsureIndex(ctx, index, mappings.GetTourSpotIndexBody())
}

// BulkUpsert writes a batch of documents in one bulk request, each keyed by
// its content_id. It returns the success count and the identifying keys of
// entries the cluster rejected; a partial failure is not an error.
func (s *Sink) BulkUpsert(ctx context.Context, index string, docs []domain.Record) (int, []BulkFailure, error) {
	if len(docs) == 0 {
		return 0, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultBulkTimeout)
	defer cancel()

	var buf bytes.Buffer
	for _, doc := range docs {
		action := map[string]any{
			"index": map[string]any{
				"_index": index,
				"_id":    doc.ContentID(),
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return 0, nil, fmt.Errorf("failed to encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(doc); err != nil {
			return 0, nil, fmt.Errorf("failed to encode bulk document: %w", err)
		}
	}

	es := s.client.GetClient()
	res, err := es.Bulk(
		bytes.NewReader(buf.Bytes()),
		es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("bulk request failed: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close bulk response body", logger.Error(closeErr))
		}
	}()

	if res.IsError() {
		return 0, nil, fmt.Errorf("bulk request error: %s", res.String())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&bulkRes); decodeErr != nil {
		return 0, nil, fmt.Errorf("failed to decode bulk response: %w", decodeErr)
	}

	success := 0
	var failed []BulkFailure
	for _, item := range bulkRes.Items {
		for _, result := range item {
			if result.Error != nil || result.Status >= http.StatusBadRequest {
				reason := "unknown"
				if result.Error != nil {
					reason = result.Error.Reason
				}
				failed = append(failed, BulkFailure{DocumentID: result.ID, Reason: reason})
				continue
			}
			success++
		}
	}

	return success, failed, nil
}

// UpsertOne writes a single document keyed by id, replacing any existing
// document with the same id.
func (s *Sink) UpsertOne(ctx context.Context, index, id string, doc domain.Record) error {
	if id == "" {
		return errors.New("document id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	es := s.client.GetClient()
	res, err := es.Index(
		index,
		bytes.NewReader(body),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close index response body", logger.Error(closeErr))
		}
	}()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error indexing %s: %s", id, res.String())
	}

	return nil
}

// GetDocument retrieves a document's source by id. The second return value
// reports whether the document exists.
func (s *Sink) GetDocument(ctx context.Context, index, id string) (domain.Record, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	es := s.client.GetClient()
	res, err := es.Get(
		index,
		id,
		es.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close get response body", logger.Error(closeErr))
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if res.IsError() {
		return nil, false, fmt.Errorf("error getting document %s: %s", id, res.String())
	}

	var getRes struct {
		Source domain.Record `json:"_source"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&getRes); decodeErr != nil {
		return nil, false, fmt.Errorf("failed to decode document: %w", decodeErr)
	}

	return getRes.Source, true, nil
}
