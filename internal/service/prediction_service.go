package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lgs-predict/internal/cache"
	"lgs-predict/internal/corpus"
	"lgs-predict/internal/domain"
	"lgs-predict/internal/generation"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/repository"
	"lgs-predict/internal/validation"

	"go.uber.org/zap"
)

// PredictionService orchestrates corpus analysis, model generation and
// persistence behind a single façade.
type PredictionService interface {
	Status() *domain.ModelStatus
	PredictQuestions(ctx context.Context, req *domain.PredictionRequest) (*domain.PredictionRecord, error)
	PredictTrends(ctx context.Context) (*domain.TrendForecast, error)
	AnalyzeQuestion(ctx context.Context, questionText string) (*domain.QuestionReview, error)
	ClassifyTopic(ctx context.Context, questionText string) (string, error)
	CategoryStatistics() *domain.CategoryStatistics
	StoreStatistics() domain.StoreStatistics
	SampleQuestions(category string, count int) ([]domain.Question, error)
	Subcategories(category string) ([]string, error)
	History() []domain.PredictionRecord
	ClearGenerated() (int, error)
	ExportGenerated(path string) error
}

type predictionService struct {
	analyzer  *corpus.Analyzer
	generator domain.QuestionGenerator
	repo      *repository.QuestionRepository
	cache     domain.Cache
	validator *validation.Validator
	trendTTL  time.Duration

	mu      sync.Mutex
	history []domain.PredictionRecord
}

// NewPredictionService builds the orchestrator. cacheClient may be nil;
// trend forecasts are then computed on every call.
func NewPredictionService(
	analyzer *corpus.Analyzer,
	generator domain.QuestionGenerator,
	repo *repository.QuestionRepository,
	cacheClient domain.Cache,
	trendTTL time.Duration,
) PredictionService {
	return &predictionService{
		analyzer:  analyzer,
		generator: generator,
		repo:      repo,
		cache:     cacheClient,
		validator: validation.NewValidator(),
		trendTTL:  trendTTL,
	}
}

// Status reports the orchestrator state and the corpus analysis summary.
func (s *predictionService) Status() *domain.ModelStatus {
	s.mu.Lock()
	generated := 0
	for _, record := range s.history {
		generated += len(record.GeneratedQuestions)
	}
	s.mu.Unlock()

	return &domain.ModelStatus{
		Status:                  "active",
		TotalTrainingQuestions:  s.analyzer.TotalQuestions(),
		SupportedCategories:     domain.SupportedCategories,
		DifficultyLevels:        domain.DifficultyLevels,
		GeneratedQuestionsCount: generated,
		DataAnalysis:            s.analyzer.PatternAnalysis(),
	}
}

// PredictQuestions runs one generation request end to end: validation,
// context assembly, model call, persistence and history bookkeeping. A
// model failure yields a record with Success=false, not an error; only
// validation rejects the request.
func (s *predictionService) PredictQuestions(ctx context.Context, req *domain.PredictionRequest) (*domain.PredictionRecord, error) {
	l := logger.Get()

	if req.Difficulty == "" {
		req.Difficulty = domain.DefaultDifficulty
	}
	if errs := s.validator.ValidateGenerationRequest(req); len(errs) > 0 {
		return nil, errs
	}

	category := req.Category
	if category == "" {
		category = s.mostFrequentCategory()
		l.Info("no category given, using the most frequent one", zap.String("category", category))
	}

	pctx := s.analyzer.BuildPredictionContext(category)

	drafts, err := s.generator.GenerateQuestions(ctx, pctx, category, req.Subcategory, req.Count, req.Difficulty)
	if err != nil {
		l.Error("question generation failed", zap.String("category", category), zap.Error(err))
		drafts = nil
	}

	for i := range drafts {
		if drafts[i].Subcategory == "" {
			drafts[i].Subcategory = req.Subcategory
		}
		if drafts[i].Difficulty == "" {
			drafts[i].Difficulty = req.Difficulty
		}
	}

	questions := s.repo.AddBatch(drafts, category)

	record := domain.PredictionRecord{
		Timestamp: time.Now(),
		Request: domain.PredictionRequest{
			Category:    category,
			Subcategory: req.Subcategory,
			Count:       req.Count,
			Difficulty:  req.Difficulty,
		},
		GeneratedQuestions: questions,
		Success:            len(questions) > 0,
		AnalysisContext: domain.AnalysisSnapshot{
			TotalTrainingData:   pctx.TotalAnalyzedQuestions,
			CategorySampleCount: len(pctx.SampleQuestions),
			YearsAnalyzed:       pctx.YearsCovered,
		},
	}

	s.mu.Lock()
	s.history = append(s.history, record)
	s.mu.Unlock()

	return &record, nil
}

// PredictTrends produces (or serves from cache) the exam trend forecast.
func (s *predictionService) PredictTrends(ctx context.Context) (*domain.TrendForecast, error) {
	l := logger.Get()
	cacheKey := cache.GenerateCacheKey("prediction", "trends", "2026")

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var forecast domain.TrendForecast
			if err := json.Unmarshal([]byte(cached), &forecast); err == nil {
				return &forecast, nil
			}
			l.Warn("dropping unreadable cached trend forecast", zap.Error(err))
		} else if err != domain.ErrCacheMiss {
			l.Warn("trend cache lookup failed", zap.Error(err))
		}
	}

	pctx := s.analyzer.BuildPredictionContext("")

	trends, err := s.generator.PredictTrends(ctx, pctx)
	if err != nil {
		l.Error("trend prediction failed", zap.Error(err))
		trends = &domain.TrendPrediction{}
	}

	forecast := &domain.TrendForecast{
		Timestamp:            time.Now(),
		DataAnalysisSummary:  s.analyzer.Summary(),
		TrendPredictions:     trends,
		CategoryDistribution: s.analyzer.CategoryDistribution(),
		QuestionPatterns:     pctx.QuestionPatterns,
	}

	// Failed forecasts are not cached so the next call retries.
	if s.cache != nil && !trends.IsEmpty() {
		if data, err := json.Marshal(forecast); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.trendTTL); err != nil {
				l.Warn("failed to cache trend forecast", zap.Error(err))
			}
		}
	}

	return forecast, nil
}

// AnalyzeQuestion reviews one question text. Off-domain input yields a
// review carrying a warning instead of an analysis.
func (s *predictionService) AnalyzeQuestion(ctx context.Context, questionText string) (*domain.QuestionReview, error) {
	if errs := s.validator.ValidateAnalysisText(questionText); len(errs) > 0 {
		return nil, errs
	}

	review := &domain.QuestionReview{
		Timestamp: time.Now(),
		Question:  truncateForReview(questionText),
	}

	if !generation.IsTurkishRelated(questionText) {
		review.Warning = domain.NewOffDomainError().Message
		return review, nil
	}

	analysis, err := s.generator.AnalyzeQuestion(ctx, questionText)
	if err != nil {
		logger.Get().Error("question analysis failed", zap.Error(err))
		analysis = &domain.QuestionAnalysis{}
	}
	review.Analysis = analysis
	return review, nil
}

// ClassifyTopic labels a question with one of the supported categories.
func (s *predictionService) ClassifyTopic(ctx context.Context, questionText string) (string, error) {
	if errs := s.validator.ValidateAnalysisText(questionText); len(errs) > 0 {
		return "", errs
	}
	if !generation.IsTurkishRelated(questionText) {
		return "", domain.NewOffDomainError()
	}
	return s.generator.ClassifyTopic(ctx, questionText)
}

// CategoryStatistics aggregates the per-category corpus statistics.
func (s *predictionService) CategoryStatistics() *domain.CategoryStatistics {
	return &domain.CategoryStatistics{
		CategoryDistribution:    s.analyzer.CategoryDistribution(),
		SubcategoryDistribution: s.analyzer.SubcategoryDistribution(),
		YearDistribution:        s.analyzer.YearDistribution(),
		TopKeywords:             s.analyzer.KeywordFrequency(30),
	}
}

// StoreStatistics aggregates the persisted question store.
func (s *predictionService) StoreStatistics() domain.StoreStatistics {
	return s.repo.Statistics()
}

// SampleQuestions returns historical exemplars from one category.
func (s *predictionService) SampleQuestions(category string, count int) ([]domain.Question, error) {
	if errs := s.validator.ValidateSampleRequest(category, count); len(errs) > 0 {
		return nil, errs
	}
	return s.analyzer.SampleQuestions(category, count), nil
}

// Subcategories lists the subcategories of a category, preferring the ones
// observed in the corpus over the static table.
func (s *predictionService) Subcategories(category string) ([]string, error) {
	if errs := s.validator.ValidateCategory(category); len(errs) > 0 {
		return nil, errs
	}

	observed := s.analyzer.SubcategoryDistribution()[category]
	if len(observed) == 0 {
		return domain.Subcategories(category), nil
	}

	// Static table order first, then corpus-only subcategories.
	seen := make(map[string]bool, len(observed))
	var out []string
	for _, sub := range domain.Subcategories(category) {
		if _, ok := observed[sub]; ok {
			out = append(out, sub)
			seen[sub] = true
		}
	}
	for _, q := range s.analyzer.QuestionsByCategory(category) {
		if q.Subcategory != "" && !seen[q.Subcategory] {
			out = append(out, q.Subcategory)
			seen[q.Subcategory] = true
		}
	}
	return out, nil
}

// History returns a copy of all generation records, oldest first.
func (s *predictionService) History() []domain.PredictionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PredictionRecord, len(s.history))
	copy(out, s.history)
	return out
}

// ClearGenerated drops the in-memory history and every persisted question
// with AI provenance. It returns how many stored questions were removed.
func (s *predictionService) ClearGenerated() (int, error) {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	return s.repo.ClearGenerated()
}

// ExportGenerated writes the full question store to a separate file.
func (s *predictionService) ExportGenerated(path string) error {
	return s.repo.Export(path)
}

func (s *predictionService) mostFrequentCategory() string {
	dist := s.analyzer.CategoryDistribution()
	best := ""
	bestCount := -1
	// Iterate the fixed category order so ties resolve deterministically.
	for _, category := range domain.SupportedCategories {
		if count := dist[category]; count > bestCount {
			best = category
			bestCount = count
		}
	}
	if best == "" || bestCount <= 0 {
		return domain.SupportedCategories[0]
	}
	return best
}

const reviewPreviewLen = 500

func truncateForReview(text string) string {
	runes := []rune(text)
	if len(runes) <= reviewPreviewLen {
		return text
	}
	return string(runes[:reviewPreviewLen]) + "..."
}
