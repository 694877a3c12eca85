package dto

import "lgs-predict/internal/domain"

// APIResponse is the standard success envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse wraps a payload in the success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// GenerationRequest is the body of POST /generate.
type GenerationRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Count       int    `json:"count"`
	Difficulty  string `json:"difficulty"`
}

// ToDomain applies the documented defaults (count 5, difficulty orta).
func (r *GenerationRequest) ToDomain() *domain.PredictionRequest {
	req := &domain.PredictionRequest{
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Count:       r.Count,
		Difficulty:  r.Difficulty,
	}
	if req.Count == 0 {
		req.Count = 5
	}
	if req.Difficulty == "" {
		req.Difficulty = domain.DefaultDifficulty
	}
	return req
}

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	QuestionText string `json:"question_text"`
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	QuestionText string `json:"question_text"`
}

// CategoriesResponse is the payload of GET /categories.
type CategoriesResponse struct {
	SupportedCategories     []string                  `json:"supported_categories"`
	CategoryDistribution    map[string]int            `json:"category_distribution"`
	SubcategoryDistribution map[string]map[string]int `json:"subcategory_distribution"`
}

// SubcategoriesResponse is the payload of GET /categories/:category/subcategories.
type SubcategoriesResponse struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
}

// SampleQuestionsResponse is the payload of GET /sample/:category.
type SampleQuestionsResponse struct {
	Category  string            `json:"category"`
	Count     int               `json:"count"`
	Questions []domain.Question `json:"questions"`
}

// HistoryResponse is the payload of GET /history.
type HistoryResponse struct {
	TotalPredictions int                       `json:"total_predictions"`
	History          []domain.PredictionRecord `json:"history"`
}

// ClassifyResponse is the payload of POST /classify.
type ClassifyResponse struct {
	Category string `json:"category"`
}

// ClearResponse is the payload of DELETE /clear.
type ClearResponse struct {
	RemovedQuestions int `json:"removed_questions"`
}

// StatisticsResponse is the payload of GET /statistics.
type StatisticsResponse struct {
	Corpus *domain.CategoryStatistics `json:"corpus"`
	Store  domain.StoreStatistics     `json:"store"`
}
