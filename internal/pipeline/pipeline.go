// Package pipeline orchestrates the catalog sync: paginated fetch,
// transform chain, and index loading in full or incremental mode.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/plan4land/tourindex/internal/domain"
	"github.com/plan4land/tourindex/internal/elasticsearch"
	"github.com/plan4land/tourindex/internal/logger"
	"github.com/plan4land/tourindex/internal/metrics"
	"github.com/plan4land/tourindex/internal/tourapi"
	"github.com/plan4land/tourindex/internal/transform"
)

// Source fetches catalog listing pages from the provider.
type Source interface {
	FetchPage(ctx context.Context, pageNo int, opts tourapi.ListOptions) (*tourapi.Page, error)
}

// Sink receives enriched documents. The search index is the only durable
// state the pipeline touches.
type Sink interface {
	EnsureIndex(ctx context.Context, index string) error
	BulkUpsert(ctx context.Context, index string, docs []domain.Record) (int, []elasticsearch.BulkFailure, error)
	UpsertOne(ctx context.Context, index, id string, doc domain.Record) error
	GetDocument(ctx context.Context, index, id string) (domain.Record, bool, error)
}

// Default pipeline parameters.
const (
	defaultPageSize      = 200
	defaultBulkBatchSize = 2000
	defaultPageCooldown  = 2 * time.Second
)

// Config holds sync pipeline parameters.
type Config struct {
	IndexName     string
	PageSize      int
	BulkBatchSize int
	PageCooldown  time.Duration
}

// WithDefaults returns a copy of the config with defaults applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.BulkBatchSize <= 0 {
		c.BulkBatchSize = defaultBulkBatchSize
	}
	if c.PageCooldown <= 0 {
		c.PageCooldown = defaultPageCooldown
	}
	return c
}

// Pipeline runs catalog sync passes. One page is fetched, fully
// transformed, and accumulated before the next page is requested; there is
// no internal parallelism.
type Pipeline struct {
	source  Source
	sink    Sink
	cfg     Config
	limiter *rate.Limiter
	logger  logger.Logger
	metrics *metrics.PipelineMetrics
}

// New creates a new sync pipeline.
func New(source Source, sink Sink, cfg Config, log logger.Logger, m *metrics.PipelineMetrics) *Pipeline {
	cfg = cfg.WithDefaults()
	if m == nil {
		m = metrics.NewNopPipelineMetrics()
	}
	return &Pipeline{
		source: source,
		sink:   sink,
		cfg:    cfg,
		// one page request per cool-down interval
		limiter: rate.NewLimiter(rate.Every(cfg.PageCooldown), 1),
		logger:  log,
		metrics: m,
	}
}

// FullSync re-ingests the entire upstream catalog and loads the surviving
// records into the index in bulk batches.
func (p *Pipeline) FullSync(ctx context.Context) (*RunStats, error) {
	stats := newRunStats(ModeFull, "")
	defer stats.finish()
	defer p.observeDuration(stats)

	log := p.logger.With(logger.String("run_id", stats.RunID), logger.String("mode", stats.Mode))
	log.Info("Starting full catalog sync", logger.String("index", p.cfg.IndexName))

	records, err := p.crawl(ctx, tourapi.ListOptions{}, stats, log)
	if err != nil {
		return stats, err
	}

	if len(records) == 0 {
		log.Info("No records to index")
		return stats, nil
	}

	if ensureErr := p.sink.EnsureIndex(ctx, p.cfg.IndexName); ensureErr != nil {
		return stats, fmt.Errorf("ensure index: %w", ensureErr)
	}

	for start := 0; start < len(records); start += p.cfg.BulkBatchSize {
		end := min(start+p.cfg.BulkBatchSize, len(records))
		batch := records[start:end]

		success, failed, bulkErr := p.sink.BulkUpsert(ctx, p.cfg.IndexName, batch)
		if bulkErr != nil {
			// A failed batch does not stop the run; the next batch may
			// still land.
			log.Error("Bulk batch failed",
				logger.Int("batch_start", start),
				logger.Int("batch_size", len(batch)),
				logger.Error(bulkErr),
			)
			stats.Failed += len(batch)
			p.metrics.SinkFailures.Add(float64(len(batch)))
			continue
		}

		stats.Indexed += success
		stats.Failed += len(failed)
		p.metrics.DocumentsIndexed.Add(float64(success))
		p.metrics.SinkFailures.Add(float64(len(failed)))
		for _, failure := range failed {
			log.Error("Document rejected by index",
				logger.String("content_id", failure.DocumentID),
				logger.String("reason", failure.Reason),
			)
		}

		log.Info("Bulk batch indexed",
			logger.Int("indexed", stats.Indexed),
			logger.Int("collected", len(records)),
		)
	}

	log.Info("Full catalog sync finished",
		logger.Int("total_count", stats.TotalCount),
		logger.Int("indexed", stats.Indexed),
		logger.Int("excluded", stats.Excluded),
		logger.Int("dropped", stats.Dropped),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", time.Since(stats.StartedAt)),
	)
	return stats, nil
}

// IncrementalSync ingests records whose provider-side modification date
// equals cutoff (YYYYMMDD) and upserts them one by one keyed by
// content_id, so partial failures resolve per record.
func (p *Pipeline) IncrementalSync(ctx context.Context, cutoff string) (*RunStats, error) {
	stats := newRunStats(ModeIncremental, cutoff)
	defer stats.finish()
	defer p.observeDuration(stats)

	log := p.logger.With(logger.String("run_id", stats.RunID), logger.String("mode", stats.Mode))
	log.Info("Starting incremental catalog sync",
		logger.String("index", p.cfg.IndexName),
		logger.String("cutoff", cutoff),
	)

	records, err := p.crawl(ctx, tourapi.ListOptions{ModifiedDate: cutoff}, stats, log)
	if err != nil {
		return stats, err
	}

	if len(records) == 0 {
		log.Info("No updated records for cutoff", logger.String("cutoff", cutoff))
		return stats, nil
	}

	if ensureErr := p.sink.EnsureIndex(ctx, p.cfg.IndexName); ensureErr != nil {
		return stats, fmt.Errorf("ensure index: %w", ensureErr)
	}

	for _, rec := range records {
		contentID := rec.ContentID()
		if p.upsertRecord(ctx, contentID, rec, log) {
			stats.Indexed++
			p.metrics.DocumentsIndexed.Inc()
		} else {
			stats.Failed++
			p.metrics.SinkFailures.Inc()
		}
	}

	log.Info("Incremental catalog sync finished",
		logger.Int("total_count", stats.TotalCount),
		logger.Int("indexed", stats.Indexed),
		logger.Int("excluded", stats.Excluded),
		logger.Int("dropped", stats.Dropped),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", time.Since(stats.StartedAt)),
	)
	return stats, nil
}

// upsertRecord writes one record, reporting success. A failure is logged
// and the run continues with the next record.
func (p *Pipeline) upsertRecord(ctx context.Context, contentID string, rec domain.Record, log logger.Logger) bool {
	existing, found, err := p.sink.GetDocument(ctx, p.cfg.IndexName, contentID)
	if err != nil {
		log.Error("Failed to read existing document", logger.String("content_id", contentID), logger.Error(err))
		return false
	}
	if found {
		// The refresh overwrites the whole document; the detail payload
		// added by the serving side is rebuilt on demand.
		if _, hasDetail := existing["detail"]; hasDetail {
			log.Info("Overwrite discards detail field", logger.String("content_id", contentID))
		}
	}

	if upsertErr := p.sink.UpsertOne(ctx, p.cfg.IndexName, contentID, rec); upsertErr != nil {
		log.Error("Failed to upsert document", logger.String("content_id", contentID), logger.Error(upsertErr))
		return false
	}

	log.Debug("Document upserted", logger.String("content_id", contentID))
	return true
}

// crawl walks the paginated listing and returns the records surviving the
// transform chain. A failure on the count-discovery request aborts the
// run; a failure on any later page skips that page.
func (p *Pipeline) crawl(ctx context.Context, opts tourapi.ListOptions, stats *RunStats, log logger.Logger) ([]domain.Record, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for page slot: %w", err)
	}

	first, err := p.source.FetchPage(ctx, 1, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	p.metrics.PagesFetched.Inc()

	stats.TotalCount = first.TotalCount
	log.Info("Catalog count discovered", logger.Int("total_count", first.TotalCount))
	if first.TotalCount == 0 {
		return nil, nil
	}

	lastPage := first.TotalCount/p.cfg.PageSize + 1
	var records []domain.Record

	records = p.processPage(first, records, stats, log)
	stats.PagesFetched++

	for pageNo := 2; pageNo <= lastPage; pageNo++ {
		if waitErr := p.limiter.Wait(ctx); waitErr != nil {
			return records, fmt.Errorf("wait for page slot: %w", waitErr)
		}

		page, fetchErr := p.source.FetchPage(ctx, pageNo, opts)
		if fetchErr != nil {
			// Skip the page; its records are lost for this run.
			log.Error("Page request failed", logger.Int("page", pageNo), logger.Error(fetchErr))
			stats.PagesFailed++
			p.metrics.PageFailures.Inc()
			continue
		}
		p.metrics.PagesFetched.Inc()

		records = p.processPage(page, records, stats, log)
		stats.PagesFetched++
		log.Info("Page processed",
			logger.Int("page", pageNo),
			logger.Int("collected", len(records)),
			logger.Int("total_count", first.TotalCount),
		)
	}

	if stats.PagesFailed > 0 {
		log.Warn("Run is missing pages",
			logger.Int("pages_failed", stats.PagesFailed),
			logger.Int("total_count", first.TotalCount),
			logger.Int("collected", len(records)),
		)
	}

	return records, nil
}

// processPage applies the transform chain to every item of a page:
// normalize, exclude, classify, normalize dates. Excluded and malformed
// records are counted and logged, never fatal to the run.
func (p *Pipeline) processPage(page *tourapi.Page, records []domain.Record, stats *RunStats, log logger.Logger) []domain.Record {
	for _, raw := range page.Items {
		rec := transform.Normalize(raw)

		if transform.Excluded(rec) {
			log.Debug("Record excluded", logger.String("content_id", rec.ContentID()))
			stats.Excluded++
			p.metrics.RecordsExcluded.Inc()
			continue
		}

		if err := transform.Enrich(rec); err != nil {
			log.Warn("Record dropped",
				logger.String("content_id", rec.ContentID()),
				logger.Error(err),
			)
			stats.Dropped++
			p.metrics.RecordsDropped.Inc()
			continue
		}

		if err := transform.NormalizeDates(rec); err != nil {
			if errors.Is(err, transform.ErrMalformedTimestamp) {
				log.Warn("Record dropped",
					logger.String("content_id", rec.ContentID()),
					logger.Error(err),
				)
				stats.Dropped++
				p.metrics.RecordsDropped.Inc()
				continue
			}
			log.Error("Unexpected date normalization failure",
				logger.String("content_id", rec.ContentID()),
				logger.Error(err),
			)
			stats.Dropped++
			p.metrics.RecordsDropped.Inc()
			continue
		}

		records = append(records, rec)
	}
	return records
}

func (p *Pipeline) observeDuration(stats *RunStats) {
	p.metrics.RunDuration.Observe(time.Since(stats.StartedAt).Seconds())
}
