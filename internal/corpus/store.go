package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"lgs-predict/internal/domain"
)

// Metadata is the top-level metadata block of the flat question document.
type Metadata struct {
	Course string   `json:"ders"`
	Exam   string   `json:"sinav"`
	Years  []string `json:"yillar"`
	Topics []string `json:"konu_basliklari"`
}

// Document is the on-disk schema of the question store: a metadata block and
// a questions array.
type Document struct {
	Metadata  Metadata          `json:"metadata"`
	Questions []domain.Question `json:"sorular"`
}

// NewDocument returns an empty document with default metadata.
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Course: "Türkçe",
			Exam:   "LGS",
			Years:  []string{},
			Topics: domain.SupportedCategories,
		},
		Questions: []domain.Question{},
	}
}

// ReadDocument loads a question document from disk. A missing file is a
// DATA_NOT_FOUND error; a malformed one surfaces the parse error. Neither is
// silently ignored.
func ReadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDataNotFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to read question document %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question document %s: %w", path, err)
	}
	return &doc, nil
}

// WriteDocument persists the full document to disk, replacing any previous
// content.
func WriteDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode question document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write question document %s: %w", path, err)
	}
	return nil
}

// Store holds the historical question corpus in memory. It is the exclusive
// owner of the loaded data; analyzers hold read-only views derived from it.
type Store struct {
	path string
	doc  *Document
}

// NewStore creates a store for the document at path without loading it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the document from disk, replacing any previously loaded data.
func (s *Store) Load() error {
	doc, err := ReadDocument(s.path)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// QuestionCount returns the number of loaded questions.
func (s *Store) QuestionCount() int {
	if s.doc == nil {
		return 0
	}
	return len(s.doc.Questions)
}

// QuestionAt returns the question at index, or nil when out of range.
func (s *Store) QuestionAt(index int) *domain.Question {
	if s.doc == nil || index < 0 || index >= len(s.doc.Questions) {
		return nil
	}
	q := s.doc.Questions[index]
	return &q
}

// Questions returns the loaded questions in stored order.
func (s *Store) Questions() []domain.Question {
	if s.doc == nil {
		return nil
	}
	return s.doc.Questions
}

// AllCategories returns the fixed ordered category list. It is not derived
// from the loaded data.
func (s *Store) AllCategories() []string {
	out := make([]string, len(domain.SupportedCategories))
	copy(out, domain.SupportedCategories)
	return out
}
