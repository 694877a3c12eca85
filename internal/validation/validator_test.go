package validation

import (
	"strings"
	"testing"

	"lgs-predict/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(errs domain.ValidationErrors) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateGenerationRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid request passes", func(t *testing.T) {
		errs := v.ValidateGenerationRequest(&domain.PredictionRequest{
			Category:   "Paragrafta Anlam",
			Count:      5,
			Difficulty: "orta",
		})
		assert.Empty(t, errs)
	})

	t.Run("empty category is allowed", func(t *testing.T) {
		errs := v.ValidateGenerationRequest(&domain.PredictionRequest{
			Count:      1,
			Difficulty: "kolay",
		})
		assert.Empty(t, errs)
	})

	t.Run("all violations are collected", func(t *testing.T) {
		errs := v.ValidateGenerationRequest(&domain.PredictionRequest{
			Category:   "Matematik",
			Count:      0,
			Difficulty: "imkansız",
		})
		require.Len(t, errs, 3)
		assert.ElementsMatch(t, []string{"count", "difficulty", "category"}, fieldNames(errs))
	})

	t.Run("count bounds", func(t *testing.T) {
		for _, count := range []int{MinQuestionCount, MaxQuestionCount} {
			errs := v.ValidateGenerationRequest(&domain.PredictionRequest{Count: count, Difficulty: "zor"})
			assert.Empty(t, errs)
		}
		for _, count := range []int{MinQuestionCount - 1, MaxQuestionCount + 1} {
			errs := v.ValidateGenerationRequest(&domain.PredictionRequest{Count: count, Difficulty: "zor"})
			assert.Len(t, errs, 1)
		}
	})
}

func TestValidateAnalysisText(t *testing.T) {
	v := NewValidator()

	t.Run("missing text", func(t *testing.T) {
		errs := v.ValidateAnalysisText("   ")
		require.Len(t, errs, 1)
		assert.Equal(t, "question_text", errs[0].Field)
	})

	t.Run("too short text", func(t *testing.T) {
		errs := v.ValidateAnalysisText("kısa")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "en az")
	})

	t.Run("length is measured in runes", func(t *testing.T) {
		// Nine runes but more than ten bytes.
		short := strings.Repeat("ş", MinAnalysisTextLen-1)
		assert.Len(t, v.ValidateAnalysisText(short), 1)
		assert.Empty(t, v.ValidateAnalysisText(strings.Repeat("ş", MinAnalysisTextLen)))
	})

	t.Run("valid text passes", func(t *testing.T) {
		assert.Empty(t, v.ValidateAnalysisText("Parçanın ana düşüncesi hangisidir?"))
	})
}

func TestValidateSampleRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid request passes", func(t *testing.T) {
		assert.Empty(t, v.ValidateSampleRequest("Şiirde Anlam", 5))
	})

	t.Run("missing category", func(t *testing.T) {
		errs := v.ValidateSampleRequest("", 5)
		require.Len(t, errs, 1)
		assert.Equal(t, "category", errs[0].Field)
	})

	t.Run("unknown category and bad count are both reported", func(t *testing.T) {
		errs := v.ValidateSampleRequest("Fen Bilimleri", MaxSampleCount+1)
		assert.Len(t, errs, 2)
	})
}

func TestValidateCategory(t *testing.T) {
	v := NewValidator()

	for _, category := range domain.SupportedCategories {
		assert.Empty(t, v.ValidateCategory(category))
	}

	errs := v.ValidateCategory("İnkılap Tarihi")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Desteklenen kategoriler")

	errs = v.ValidateCategory("")
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
}
