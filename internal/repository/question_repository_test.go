package repository

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"lgs-predict/internal/corpus"
	"lgs-predict/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedIDPattern = regexp.MustCompile(`^LGS-TR-GEN-\d{14}-[0-9a-z]{8}$`)

func validDraft() domain.Draft {
	return domain.Draft{
		Body: "Aşağıdaki cümlelerin hangisinde deyim kullanılmıştır?\n\nA) bir\nB) iki\nC) üç\nD) dört",
		Options: map[string]string{
			"A": "bir", "B": "iki", "C": "üç", "D": "dört",
		},
		CorrectAnswer: "B",
		Explanation:   "'Sağlama almak' bir deyimdir.",
		Subcategory:   "Deyimler",
		Difficulty:    "orta",
	}
}

func newTestRepo(t *testing.T, strict bool) (*QuestionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generated.json")
	repo, err := NewQuestionRepository(path, strict)
	require.NoError(t, err)
	return repo, path
}

func TestQuestionRepository_AddAndReload(t *testing.T) {
	repo, path := newTestRepo(t, false)

	id, err := repo.Add(validDraft(), "Sözcükte Anlam")
	require.NoError(t, err)
	assert.Regexp(t, generatedIDPattern, id)
	assert.Equal(t, 1, repo.Count())

	// A fresh repository over the same file sees the persisted question.
	reopened, err := NewQuestionRepository(path, false)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Count())

	stored := reopened.Query("Sözcükte Anlam", "", "", 0)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.Equal(t, domain.GeneratedYearTag, stored[0].Year)
	assert.Equal(t, domain.GeneratedSourceTag, stored[0].Source)
	assert.Equal(t, "B", stored[0].CorrectAnswer)
	assert.True(t, stored[0].IsGenerated())
}

func TestQuestionRepository_AddInvalidCategory(t *testing.T) {
	repo, _ := newTestRepo(t, false)

	_, err := repo.Add(validDraft(), "Matematik")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidCategory, domainErr.Code)
	assert.Equal(t, 0, repo.Count())
}

func TestQuestionRepository_Normalization(t *testing.T) {
	t.Run("lenient mode substitutes defaults", func(t *testing.T) {
		repo, _ := newTestRepo(t, false)

		d := validDraft()
		d.CorrectAnswer = "E"
		d.Difficulty = "imkansız"
		id, err := repo.Add(d, "Sözcükte Anlam")
		require.NoError(t, err)

		stored := repo.Query("", "", "", 0)
		require.Len(t, stored, 1)
		assert.Equal(t, id, stored[0].ID)
		assert.Equal(t, domain.DefaultCorrectAnswer, stored[0].CorrectAnswer)
		assert.Equal(t, domain.DefaultDifficulty, stored[0].Difficulty)
	})

	t.Run("strict mode rejects out-of-scale values", func(t *testing.T) {
		repo, _ := newTestRepo(t, true)

		d := validDraft()
		d.CorrectAnswer = "E"
		_, err := repo.Add(d, "Sözcükte Anlam")
		require.Error(t, err)

		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeValidation, domainErr.Code)
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("empty values get defaults in both modes", func(t *testing.T) {
		repo, _ := newTestRepo(t, true)

		d := validDraft()
		d.Difficulty = ""
		d.Subcategory = ""
		_, err := repo.Add(d, "Sözcükte Anlam")
		require.NoError(t, err)

		stored := repo.Query("", "", "", 0)
		require.Len(t, stored, 1)
		assert.Equal(t, domain.DefaultDifficulty, stored[0].Difficulty)
		assert.Equal(t, "Genel", stored[0].Subcategory)
	})
}

func TestQuestionRepository_AddBatch(t *testing.T) {
	repo, _ := newTestRepo(t, true)

	good := validDraft()
	bad := validDraft()
	bad.CorrectAnswer = "Z"

	questions := repo.AddBatch([]domain.Draft{good, bad, good}, "Cümlede Anlam")
	assert.Len(t, questions, 2, "the failing draft is skipped, not fatal")
	assert.Equal(t, 2, repo.Count())
	for _, q := range questions {
		assert.Regexp(t, generatedIDPattern, q.ID)
		assert.Equal(t, "Cümlede Anlam", q.Category)
	}
}

func TestQuestionRepository_QueryFilters(t *testing.T) {
	repo, _ := newTestRepo(t, false)

	easy := validDraft()
	easy.Difficulty = "kolay"
	hard := validDraft()
	hard.Difficulty = "zor"
	hard.Subcategory = "Atasözleri"

	_, err := repo.Add(easy, "Sözcükte Anlam")
	require.NoError(t, err)
	_, err = repo.Add(hard, "Sözcükte Anlam")
	require.NoError(t, err)
	_, err = repo.Add(easy, "Paragrafta Anlam")
	require.NoError(t, err)

	assert.Len(t, repo.Query("Sözcükte Anlam", "", "", 0), 2)
	assert.Len(t, repo.Query("", "", "kolay", 0), 2)
	assert.Len(t, repo.Query("Sözcükte Anlam", "Atasözleri", "zor", 0), 1)
	assert.Len(t, repo.Query("", "", "", 2), 2, "limit caps the result")
	assert.Empty(t, repo.Query("Şiirde Anlam", "", "", 0))
}

func TestQuestionRepository_RandomSample(t *testing.T) {
	repo, _ := newTestRepo(t, false)

	for i := 0; i < 3; i++ {
		_, err := repo.Add(validDraft(), "Sözcükte Anlam")
		require.NoError(t, err)
	}

	t.Run("small pool returned whole", func(t *testing.T) {
		sample := repo.RandomSample(10, "")
		assert.Len(t, sample, 3)
	})

	t.Run("sample size respected", func(t *testing.T) {
		sample := repo.RandomSample(2, "Sözcükte Anlam")
		assert.Len(t, sample, 2)
	})

	t.Run("unknown category yields nothing", func(t *testing.T) {
		assert.Empty(t, repo.RandomSample(2, "Paragrafta Yapı"))
	})
}

func TestQuestionRepository_Statistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.json")

	// Seed the file with one real exam question before opening the repo.
	doc := corpus.NewDocument()
	doc.Questions = append(doc.Questions, domain.Question{
		ID:         "LGS-TR-2024-001",
		Year:       "2024",
		Category:   "Paragrafta Anlam",
		Body:       "Gerçek sınav sorusu",
		Difficulty: "orta",
	})
	require.NoError(t, corpus.WriteDocument(path, doc))

	repo, err := NewQuestionRepository(path, false)
	require.NoError(t, err)

	d := validDraft()
	d.Difficulty = "kolay"
	_, err = repo.Add(d, "Sözcükte Anlam")
	require.NoError(t, err)

	stats := repo.Statistics()
	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 1, stats.AIGenerated)
	assert.Equal(t, 1, stats.RealExam)
	assert.Equal(t, 1, stats.ByCategory["Paragrafta Anlam"])
	assert.Equal(t, 1, stats.ByCategory["Sözcükte Anlam"])
	assert.Equal(t, 1, stats.ByDifficulty["kolay"])
	assert.Equal(t, 1, stats.ByDifficulty["orta"])
}

func TestQuestionRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t, false)

	id, err := repo.Add(validDraft(), "Sözcükte Anlam")
	require.NoError(t, err)

	removed, err := repo.Delete(id)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, repo.Count())

	removed, err = repo.Delete(id)
	require.NoError(t, err)
	assert.False(t, removed, "second delete finds nothing")
}

func TestQuestionRepository_ClearGenerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.json")

	doc := corpus.NewDocument()
	doc.Questions = append(doc.Questions, domain.Question{
		ID:       "LGS-TR-2023-007",
		Year:     "2023",
		Category: "Cümlede Anlam",
		Body:     "Gerçek sınav sorusu",
	})
	require.NoError(t, corpus.WriteDocument(path, doc))

	repo, err := NewQuestionRepository(path, false)
	require.NoError(t, err)

	_, err = repo.Add(validDraft(), "Sözcükte Anlam")
	require.NoError(t, err)
	_, err = repo.Add(validDraft(), "Cümlede Anlam")
	require.NoError(t, err)

	removed, err := repo.ClearGenerated()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, repo.Count(), "real exam questions survive")

	removed, err = repo.ClearGenerated()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestQuestionRepository_Export(t *testing.T) {
	repo, _ := newTestRepo(t, false)

	_, err := repo.Add(validDraft(), "Sözcükte Anlam")
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, repo.Export(exportPath))

	exported, err := corpus.ReadDocument(exportPath)
	require.NoError(t, err)
	assert.Len(t, exported.Questions, 1)
}
