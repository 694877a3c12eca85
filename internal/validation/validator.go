package validation

import (
	"fmt"
	"strings"

	"lgs-predict/internal/domain"
)

const (
	MinQuestionCount = 1
	MaxQuestionCount = 10

	MinSampleCount = 1
	MaxSampleCount = 20

	MinAnalysisTextLen = 10
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerationRequest validates a question generation request. All
// violations are collected, not just the first.
func (v *Validator) ValidateGenerationRequest(req *domain.PredictionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Count < MinQuestionCount || req.Count > MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, MinQuestionCount, MaxQuestionCount))
	}

	if !domain.IsValidDifficulty(req.Difficulty) {
		errors = append(errors, domain.ValidationError{
			Field:   "difficulty",
			Value:   req.Difficulty,
			Message: fmt.Sprintf("Geçersiz zorluk seviyesi. Seçenekler: %s", strings.Join(domain.DifficultyLevels, ", ")),
		})
	}

	if req.Category != "" && !domain.IsSupportedCategory(req.Category) {
		errors = append(errors, invalidCategory(req.Category))
	}

	return errors
}

// ValidateAnalysisText validates the text handed to question analysis.
func (v *Validator) ValidateAnalysisText(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		errors = append(errors, domain.NewMissingFieldError("question_text"))
	} else if len([]rune(trimmed)) < MinAnalysisTextLen {
		errors = append(errors, domain.ValidationError{
			Field:   "question_text",
			Value:   trimmed,
			Message: fmt.Sprintf("Soru metni en az %d karakter olmalıdır", MinAnalysisTextLen),
		})
	}

	return errors
}

// ValidateSampleRequest validates a sample-questions request.
func (v *Validator) ValidateSampleRequest(category string, count int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	} else if !domain.IsSupportedCategory(category) {
		errors = append(errors, invalidCategory(category))
	}

	if count < MinSampleCount || count > MaxSampleCount {
		errors = append(errors, domain.NewOutOfRangeError("count", count, MinSampleCount, MaxSampleCount))
	}

	return errors
}

// ValidateCategory validates a bare category path parameter.
func (v *Validator) ValidateCategory(category string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	} else if !domain.IsSupportedCategory(category) {
		errors = append(errors, invalidCategory(category))
	}

	return errors
}

func invalidCategory(category string) domain.ValidationError {
	return domain.ValidationError{
		Field:   "category",
		Value:   category,
		Message: fmt.Sprintf("Geçersiz kategori. Desteklenen kategoriler: %s", strings.Join(domain.SupportedCategories, ", ")),
	}
}
