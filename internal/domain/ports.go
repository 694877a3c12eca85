package domain

import (
	"context"
	"time"
)

// QuestionGenerator defines the interface (port) to the external generative
// model. Implementations absorb parse failures into empty results; transport
// errors surface so callers can log them, but never crash the pipeline.
type QuestionGenerator interface {
	// GenerateQuestions produces up to count candidate questions for the
	// given category. Fewer than count items is a valid outcome.
	GenerateQuestions(ctx context.Context, pctx *PredictionContext, category, subcategory string, count int, difficulty string) ([]Draft, error)

	// PredictTrends forecasts the upcoming exam from the analysis context.
	PredictTrends(ctx context.Context, pctx *PredictionContext) (*TrendPrediction, error)

	// AnalyzeQuestion reviews a single question text.
	AnalyzeQuestion(ctx context.Context, questionText string) (*QuestionAnalysis, error)

	// ClassifyTopic labels a question with one of the supported categories,
	// snapping to the canonical label when the raw response contains one.
	ClassifyTopic(ctx context.Context, questionText string) (string, error)
}

// SimilarDocument is one hit of a similarity query.
type SimilarDocument struct {
	Text     string
	Metadata map[string]string
}

// SimilaritySearcher defines the optional vector-search collaborator used to
// enrich generation prompts. Absence degrades gracefully to an empty
// reference set, never fatally.
type SimilaritySearcher interface {
	Query(ctx context.Context, text string, k int, category string) ([]SimilarDocument, error)
}

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for caching operations.
// Implementations of this interface will be the adapters (e.g., RedisCacheAdapter).
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item to the cache, overwriting an existing item if one exists.
	// If expiration is 0, the item is cached indefinitely (if supported by the adapter).
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item from the cache.
	// It should not return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
