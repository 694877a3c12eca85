package similarity

import (
	"context"
	"errors"
	"testing"

	"lgs-predict/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmbedder is a mock implementation of embeddings.Embedder.
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func indexedQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Category: "Paragrafta Anlam", Body: "Parçanın ana düşüncesi hangisidir?"},
		{ID: "q2", Category: "Paragrafta Anlam", Body: "Bu metnin konusu nedir?"},
		{ID: "q3", Category: "Sözcükte Anlam", Body: "Hangisinde deyim kullanılmıştır?"},
	}
}

func TestEmbeddingSearcher_Query(t *testing.T) {
	ctx := context.Background()

	mockEmb := new(MockEmbedder)
	mockEmb.On("EmbedQuery", ctx, "Parçanın ana düşüncesi hangisidir?").Return([]float32{1, 0, 0}, nil).Once()
	mockEmb.On("EmbedQuery", ctx, "Bu metnin konusu nedir?").Return([]float32{0, 1, 0}, nil).Once()
	mockEmb.On("EmbedQuery", ctx, "Hangisinde deyim kullanılmıştır?").Return([]float32{0, 0, 1}, nil).Once()

	searcher := NewEmbeddingSearcher(mockEmb)
	require.NoError(t, searcher.BuildIndex(ctx, indexedQuestions()))

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		mockEmb.On("EmbedQuery", ctx, "ana düşünce sorusu").Return([]float32{0.9, 0.1, 0}, nil).Once()

		docs, err := searcher.Query(ctx, "ana düşünce sorusu", 2, "")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "q1", docs[0].Metadata["id"])
		assert.Equal(t, "q2", docs[1].Metadata["id"])
	})

	t.Run("category filter restricts candidates", func(t *testing.T) {
		mockEmb.On("EmbedQuery", ctx, "deyim sorusu").Return([]float32{0.9, 0, 0.1}, nil).Once()

		docs, err := searcher.Query(ctx, "deyim sorusu", 3, "Sözcükte Anlam")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "q3", docs[0].Metadata["id"])
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		_, err := searcher.Query(ctx, "", 3, "")
		assert.Error(t, err)
	})

	t.Run("non-positive k yields nothing", func(t *testing.T) {
		docs, err := searcher.Query(ctx, "herhangi bir metin", 0, "")
		assert.NoError(t, err)
		assert.Empty(t, docs)
	})

	mockEmb.AssertExpectations(t)
}

func TestEmbeddingSearcher_BuildIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("questions that fail to embed are skipped", func(t *testing.T) {
		mockEmb := new(MockEmbedder)
		mockEmb.On("EmbedQuery", ctx, "Parçanın ana düşüncesi hangisidir?").Return([]float32{1, 0, 0}, nil).Once()
		mockEmb.On("EmbedQuery", ctx, "Bu metnin konusu nedir?").Return(nil, errors.New("embedding service down")).Once()
		mockEmb.On("EmbedQuery", ctx, "Hangisinde deyim kullanılmıştır?").Return([]float32{0, 0, 1}, nil).Once()

		searcher := NewEmbeddingSearcher(mockEmb)
		require.NoError(t, searcher.BuildIndex(ctx, indexedQuestions()))

		mockEmb.On("EmbedQuery", ctx, "konu sorusu").Return([]float32{0, 1, 0}, nil).Once()
		docs, err := searcher.Query(ctx, "konu sorusu", 10, "")
		require.NoError(t, err)
		assert.Len(t, docs, 2, "the failed question is not in the index")
	})

	t.Run("empty bodies are not indexed", func(t *testing.T) {
		mockEmb := new(MockEmbedder)
		searcher := NewEmbeddingSearcher(mockEmb)
		require.NoError(t, searcher.BuildIndex(ctx, []domain.Question{{ID: "boş"}}))

		mockEmb.On("EmbedQuery", ctx, "herhangi bir soru").Return([]float32{1, 0, 0}, nil).Once()
		docs, err := searcher.Query(ctx, "herhangi bir soru", 5, "")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("index metadata carries the question fields", func(t *testing.T) {
		mockEmb := new(MockEmbedder)
		mockEmb.On("EmbedQuery", ctx, mock.Anything).Return([]float32{1, 0, 0}, nil)

		searcher := NewEmbeddingSearcher(mockEmb)
		require.NoError(t, searcher.BuildIndex(ctx, []domain.Question{{
			ID:          "q9",
			Year:        "2024",
			Category:    "Şiirde Anlam",
			Subcategory: "Söz Sanatları",
			Difficulty:  "zor",
			Body:        "Dizelerde hangi söz sanatı vardır?",
		}}))

		docs, err := searcher.Query(ctx, "söz sanatı", 1, "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Şiirde Anlam", docs[0].Metadata["kategori"])
		assert.Equal(t, "2024", docs[0].Metadata["yil"])
		assert.Equal(t, "zor", docs[0].Metadata["zorluk"])
	})
}
