package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/core"
	"github.com/poiesic/researchit/storage"
)

// embedBatchSize is the number of chunks embedded per pool task.
const embedBatchSize = 32

// Pipeline ingests raw text into the document repository: section
// detection, chunking, batch embedding on a worker pool, and persistence.
type Pipeline struct {
	repository   storage.DocumentRepository
	embedder     ai.Embedder
	pool         *ants.Pool
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking sets the chunk size and overlap.
// Defaults are 1000 and 150.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.chunkSize = size
		}
		if overlap >= 0 {
			p.chunkOverlap = overlap
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:   repository,
		embedder:     provider.Embedder(),
		pool:         pool,
		chunkSize:    1000,
		chunkOverlap: 150,
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.logger = p.logger.With("component", "ingestion")
	return p, nil
}

// Ingest chunks the text, embeds every chunk, and persists the resulting
// documents. Returns the number of documents stored. Embedding runs in
// batches on the worker pool; ingestion itself is synchronous.
func (p *Pipeline) Ingest(ctx context.Context, source, text string) (int, error) {
	if text == "" {
		return 0, ErrEmptyDocument
	}

	docs, err := Chunk(text, source, p.chunkSize, p.chunkOverlap)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	p.logger.Info("ingesting document", "source", source, "chunks", len(docs))

	if err := p.embedAll(ctx, docs); err != nil {
		return 0, err
	}

	added, err := p.repository.AddDocuments(ctx, docs...)
	if err != nil {
		return 0, err
	}

	p.logger.Info("ingestion complete", "source", source, "stored", len(added))
	return len(added), nil
}

// embedAll embeds the documents' contents in batches on the worker pool
// and attaches unit-normalized vectors.
func (p *Pipeline) embedAll(ctx context.Context, docs []*core.Document) error {
	numBatches := (len(docs) + embedBatchSize - 1) / embedBatchSize
	errs := make([]error, numBatches)

	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		start := b * embedBatchSize
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]
		batchIdx := b

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, doc := range batch {
				texts[i] = doc.Content
			}

			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				errs[batchIdx] = err
				return
			}
			if len(vectors) != len(batch) {
				errs[batchIdx] = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(vectors))
				return
			}

			for i, doc := range batch {
				doc.Vector = normalize(vectors[i])
			}
		})
		if submitErr != nil {
			wg.Done()
			errs[batchIdx] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// normalize scales a vector to unit length so cosine similarity reduces
// to a dot product.
func normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}

	norm := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= norm
	}
	return v
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
