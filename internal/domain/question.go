package domain

import (
	"strings"
	"time"
)

// Supported main categories of the LGS Türkçe exam. The order is fixed and
// is NOT derived from the loaded corpus.
var SupportedCategories = []string{
	"Paragrafta Anlam",
	"Cümlede Anlam",
	"Sözcükte Anlam",
	"Söz Öbeğinde Anlam",
	"Paragrafta Yapı",
	"Şiirde Anlam",
}

// Difficulty levels accepted by the pipeline.
var DifficultyLevels = []string{"kolay", "orta", "zor"}

// DefaultDifficulty is substituted for unknown difficulty values.
const DefaultDifficulty = "orta"

// DefaultCorrectAnswer is substituted for unknown answer letters.
const DefaultCorrectAnswer = "A"

// OptionLabels are the four choice letters of an LGS question.
var OptionLabels = []string{"A", "B", "C", "D"}

// GeneratedYearTag marks AI-generated provenance in the year field.
const GeneratedYearTag = "AI-Üretimi"

// GeneratedSourceTag marks the generator in the source field.
const GeneratedSourceTag = "Gemini AI"

// SubcategoryTable maps each supported category to its known subcategories.
// The table is fixed a priori; subcategory values on stored questions are
// accepted as given and not validated against it.
var SubcategoryTable = map[string][]string{
	"Paragrafta Anlam": {
		"Ana Düşünce", "Yardımcı Düşünce", "Konu", "Başlık", "Anlatım Biçimleri",
	},
	"Cümlede Anlam": {
		"Öznel ve Nesnel Yargı", "Neden-Sonuç", "Amaç-Sonuç", "Koşul-Sonuç", "Örtülü Anlam",
	},
	"Sözcükte Anlam": {
		"Gerçek Anlam", "Mecaz Anlam", "Terim Anlam", "Deyimler", "Atasözleri", "Eş ve Zıt Anlam",
	},
	"Söz Öbeğinde Anlam": {
		"Söz Öbekleri", "İkilemeler",
	},
	"Paragrafta Yapı": {
		"Paragraf Tamamlama", "Paragraf Oluşturma", "Anlatım Akışını Bozan Cümle", "Cümlelerin Sıralanması",
	},
	"Şiirde Anlam": {
		"Şiirde Ana Duygu", "Söz Sanatları",
	},
}

// Question is a single exam question, historical or generated. JSON tags
// follow the flat data file schema.
type Question struct {
	ID            string            `json:"id"`
	Year          string            `json:"yil"`
	Category      string            `json:"konu"`
	Subcategory   string            `json:"alt_konu"`
	Body          string            `json:"soru_metni"`
	Options       map[string]string `json:"secenekler,omitempty"`
	CorrectAnswer string            `json:"dogru_cevap"`
	Explanation   string            `json:"cevap_aciklamasi"`
	Difficulty    string            `json:"zorluk"`
	Keywords      []string          `json:"anahtar_kelimeler"`
	CreatedAt     string            `json:"olusturma_tarihi,omitempty"`
	Source        string            `json:"kaynak,omitempty"`
}

// Draft is a parsed-but-not-yet-persisted candidate question, prior to id
// assignment.
type Draft struct {
	Body          string
	Options       map[string]string
	CorrectAnswer string
	Explanation   string
	Keywords      []string
	Subcategory   string
	Difficulty    string
}

// IsSupportedCategory reports whether name is one of the enumerated
// categories.
func IsSupportedCategory(name string) bool {
	for _, c := range SupportedCategories {
		if c == name {
			return true
		}
	}
	return false
}

// IsValidDifficulty reports whether level is one of the enumerated
// difficulty levels (case-insensitive).
func IsValidDifficulty(level string) bool {
	lower := strings.ToLower(level)
	for _, d := range DifficultyLevels {
		if d == lower {
			return true
		}
	}
	return false
}

// NormalizeDifficulty lowercases level and substitutes DefaultDifficulty for
// values outside the enumerated scale. The second return reports whether a
// substitution happened.
func NormalizeDifficulty(level string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(level))
	if IsValidDifficulty(lower) {
		return lower, false
	}
	return DefaultDifficulty, true
}

// NormalizeCorrectAnswer uppercases letter and substitutes
// DefaultCorrectAnswer for values outside A-D. The second return reports
// whether a substitution happened.
func NormalizeCorrectAnswer(letter string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(letter))
	for _, l := range OptionLabels {
		if l == upper {
			return upper, false
		}
	}
	return DefaultCorrectAnswer, true
}

// Subcategories returns the known subcategories of a category, or an empty
// slice for categories without subcategory data. It never fails.
func Subcategories(category string) []string {
	subs, ok := SubcategoryTable[category]
	if !ok {
		return []string{}
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// IsGenerated reports AI-generated provenance.
func (q *Question) IsGenerated() bool {
	return q.Year == GeneratedYearTag
}

// NewGeneratedQuestion builds a Question from a draft with generated
// provenance. The id is assigned by the repository.
func NewGeneratedQuestion(d Draft, category, subcategory, difficulty string) Question {
	if subcategory == "" {
		subcategory = "Genel"
	}
	keywords := d.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return Question{
		Year:          GeneratedYearTag,
		Category:      category,
		Subcategory:   subcategory,
		Body:          d.Body,
		Options:       d.Options,
		CorrectAnswer: d.CorrectAnswer,
		Explanation:   d.Explanation,
		Difficulty:    difficulty,
		Keywords:      keywords,
		CreatedAt:     time.Now().Format(time.RFC3339),
		Source:        GeneratedSourceTag,
	}
}
