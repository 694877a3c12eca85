package repository

import (
	"math/rand"
	"os"
	"sync"
	"time"

	"lgs-predict/internal/corpus"
	"lgs-predict/internal/domain"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/util"

	"go.uber.org/zap"
)

// QuestionRepository persists generated questions in a flat JSON document.
// Every mutation rewrites the whole file; the corpus is small enough that
// load-modify-rewrite wins over anything heavier.
type QuestionRepository struct {
	mu     sync.Mutex
	path   string
	doc    *corpus.Document
	strict bool
}

// NewQuestionRepository opens (or initializes) the store at path. In strict
// mode, drafts carrying out-of-scale difficulty or answer values are
// rejected instead of normalized.
func NewQuestionRepository(path string, strict bool) (*QuestionRepository, error) {
	doc, err := corpus.ReadDocument(path)
	if err != nil {
		if !os.IsNotExist(errCause(err)) {
			return nil, err
		}
		doc = corpus.NewDocument()
	}
	return &QuestionRepository{path: path, doc: doc, strict: strict}, nil
}

func errCause(err error) error {
	if derr, ok := err.(*domain.DomainError); ok && derr.Cause != nil {
		return derr.Cause
	}
	return err
}

// Add validates, normalizes and persists one draft as a generated question.
// It returns the assigned id.
func (r *QuestionRepository) Add(d domain.Draft, category string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(d, category)
}

func (r *QuestionRepository) addLocked(d domain.Draft, category string) (string, error) {
	l := logger.Get()

	if !domain.IsSupportedCategory(category) {
		return "", domain.NewInvalidCategoryError(category)
	}

	difficulty, substituted := domain.NormalizeDifficulty(d.Difficulty)
	if substituted && d.Difficulty != "" {
		if r.strict {
			return "", domain.NewError(domain.CodeValidation, "unknown difficulty: "+d.Difficulty, nil)
		}
		l.Warn("substituting default difficulty",
			zap.String("given", d.Difficulty),
			zap.String("substituted", difficulty))
	}

	answer, substituted := domain.NormalizeCorrectAnswer(d.CorrectAnswer)
	if substituted {
		if r.strict {
			return "", domain.NewError(domain.CodeValidation, "unknown answer letter: "+d.CorrectAnswer, nil)
		}
		l.Warn("substituting default answer letter",
			zap.String("given", d.CorrectAnswer),
			zap.String("substituted", answer))
	}

	q := domain.NewGeneratedQuestion(d, category, d.Subcategory, difficulty)
	q.CorrectAnswer = answer
	q.ID = util.NewQuestionID(util.GeneratedIDPrefix)

	r.doc.Questions = append(r.doc.Questions, q)
	if err := corpus.WriteDocument(r.path, r.doc); err != nil {
		r.doc.Questions = r.doc.Questions[:len(r.doc.Questions)-1]
		return "", err
	}
	return q.ID, nil
}

// AddBatch persists each draft, skipping the ones that fail. The returned
// slice holds the questions that made it in, ids assigned.
func (r *QuestionRepository) AddBatch(drafts []domain.Draft, category string) []domain.Question {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := logger.Get()
	questions := make([]domain.Question, 0, len(drafts))
	for _, d := range drafts {
		if _, err := r.addLocked(d, category); err != nil {
			l.Warn("skipping draft that failed to persist", zap.Error(err))
			continue
		}
		questions = append(questions, r.doc.Questions[len(r.doc.Questions)-1])
	}
	return questions
}

// Query returns stored questions matching the given filters, in insertion
// order. Empty filter values match everything; limit <= 0 means no limit.
func (r *QuestionRepository) Query(category, subcategory, difficulty string, limit int) []domain.Question {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Question
	for _, q := range r.doc.Questions {
		if category != "" && q.Category != category {
			continue
		}
		if subcategory != "" && q.Subcategory != subcategory {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// RandomSample returns up to n questions, optionally restricted to a
// category. A pool no larger than n is returned whole, in stored order.
func (r *QuestionRepository) RandomSample(n int, category string) []domain.Question {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pool []domain.Question
	for _, q := range r.doc.Questions {
		if category == "" || q.Category == category {
			pool = append(pool, q)
		}
	}
	if len(pool) <= n {
		return pool
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out := make([]domain.Question, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Statistics aggregates the store by category, difficulty and provenance.
func (r *QuestionRepository) Statistics() domain.StoreStatistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := domain.StoreStatistics{
		TotalQuestions: len(r.doc.Questions),
		ByCategory:     make(map[string]int),
		ByDifficulty:   make(map[string]int),
	}
	for _, q := range r.doc.Questions {
		category := q.Category
		if category == "" {
			category = "Bilinmiyor"
		}
		stats.ByCategory[category]++

		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = "Bilinmiyor"
		}
		stats.ByDifficulty[difficulty]++

		if q.IsGenerated() {
			stats.AIGenerated++
		} else {
			stats.RealExam++
		}
	}
	return stats
}

// Delete removes the question with the given id and reports whether it
// existed.
func (r *QuestionRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, q := range r.doc.Questions {
		if q.ID == id {
			removed := q
			r.doc.Questions = append(r.doc.Questions[:i], r.doc.Questions[i+1:]...)
			if err := corpus.WriteDocument(r.path, r.doc); err != nil {
				r.doc.Questions = append(r.doc.Questions[:i], append([]domain.Question{removed}, r.doc.Questions[i:]...)...)
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ClearGenerated drops every question with AI provenance and returns how
// many were removed.
func (r *QuestionRepository) ClearGenerated() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.doc.Questions[:0:0]
	removed := 0
	for _, q := range r.doc.Questions {
		if q.IsGenerated() {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	if removed == 0 {
		return 0, nil
	}

	previous := r.doc.Questions
	r.doc.Questions = kept
	if err := corpus.WriteDocument(r.path, r.doc); err != nil {
		r.doc.Questions = previous
		return 0, err
	}
	return removed, nil
}

// Export writes the full document to a separate file.
func (r *QuestionRepository) Export(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return corpus.WriteDocument(path, r.doc)
}

// Count returns the number of stored questions.
func (r *QuestionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.doc.Questions)
}
