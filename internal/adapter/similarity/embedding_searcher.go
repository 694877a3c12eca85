package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"lgs-predict/internal/domain"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/util"

	"github.com/tmc/langchaingo/embeddings"
	ollamaLLM "github.com/tmc/langchaingo/llms/ollama"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// indexedDocument is one embedded corpus question.
type indexedDocument struct {
	doc    domain.SimilarDocument
	vector []float32
}

// EmbeddingSearcher implements domain.SimilaritySearcher with an in-memory
// vector index over the corpus. Good for a few thousand questions; a real
// vector store is not worth its weight at this corpus size.
type EmbeddingSearcher struct {
	embedder embeddings.Embedder

	mu    sync.RWMutex
	index []indexedDocument

	sfGroup singleflight.Group
}

// NewOllamaEmbedder builds an embedder backed by a local Ollama server.
func NewOllamaEmbedder(serverURL, modelName string) (embeddings.Embedder, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollamaLLM.New(
		ollamaLLM.WithModel(modelName),
		ollamaLLM.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client for embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NewOpenAIEmbedder builds an embedder backed by the OpenAI API.
func NewOpenAIEmbedder(apiKey, modelName string) (embeddings.Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = "text-embedding-ada-002"
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client for embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NewEmbeddingSearcher wraps an embedder into a searcher with an empty
// index. Call BuildIndex before querying.
func NewEmbeddingSearcher(embedder embeddings.Embedder) *EmbeddingSearcher {
	return &EmbeddingSearcher{embedder: embedder}
}

// BuildIndex embeds every question body and replaces the index. Questions
// that fail to embed are skipped, not fatal.
func (s *EmbeddingSearcher) BuildIndex(ctx context.Context, questions []domain.Question) error {
	l := logger.Get()

	index := make([]indexedDocument, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.Body == "" {
			continue
		}
		vector, err := s.embedQuery(ctx, q.Body)
		if err != nil {
			l.Warn("skipping question that failed to embed",
				zap.String("id", q.ID), zap.Error(err))
			continue
		}
		index = append(index, indexedDocument{
			doc: domain.SimilarDocument{
				Text: q.Body,
				Metadata: map[string]string{
					"id":         q.ID,
					"kategori":   q.Category,
					"alt_konu":   q.Subcategory,
					"yil":        q.Year,
					"zorluk":     q.Difficulty,
					"soru_ozeti": util.Truncate(util.NormalizeSpace(q.Body), 120),
				},
			},
			vector: vector,
		})
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()

	l.Info("similarity index built",
		zap.Int("indexed", len(index)),
		zap.Int("total", len(questions)))
	return nil
}

// Query returns the k most similar indexed documents, optionally filtered
// to one category.
func (s *EmbeddingSearcher) Query(ctx context.Context, text string, k int, category string) ([]domain.SimilarDocument, error) {
	if text == "" {
		return nil, fmt.Errorf("query text cannot be empty")
	}
	if k <= 0 {
		return nil, nil
	}

	vector, err := s.embedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	type scored struct {
		doc   domain.SimilarDocument
		score float64
	}

	s.mu.RLock()
	candidates := make([]scored, 0, len(s.index))
	for _, entry := range s.index {
		if category != "" && entry.doc.Metadata["kategori"] != category {
			continue
		}
		candidates = append(candidates, scored{doc: entry.doc, score: cosineSimilarity(vector, entry.vector)})
	}
	s.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	docs := make([]domain.SimilarDocument, 0, len(candidates))
	for _, c := range candidates {
		docs = append(docs, c.doc)
	}
	return docs, nil
}

// embedQuery deduplicates concurrent embedding calls for the same text.
func (s *EmbeddingSearcher) embedQuery(ctx context.Context, text string) ([]float32, error) {
	result, err, _ := s.sfGroup.Do(text, func() (interface{}, error) {
		embedding, err := s.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		vector := make([]float32, len(embedding))
		for i, v := range embedding {
			vector[i] = float32(v)
		}
		return vector, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]float32), nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
