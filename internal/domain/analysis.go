package domain

import "time"

// KeywordCount is one entry of the keyword frequency ranking.
type KeywordCount struct {
	Keyword string `json:"kelime"`
	Count   int    `json:"frekans"`
}

// AnalysisReport holds the deterministic statistics derived from a loaded
// corpus. It is memoized per analyzer instance until the corpus reloads.
type AnalysisReport struct {
	TotalQuestions       int            `json:"total_questions"`
	QuestionPatterns     map[string]int `json:"question_patterns"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	YearDistribution     map[string]int `json:"year_distribution"`
	TopKeywords          []KeywordCount `json:"top_keywords"`
}

// CategoryContext carries category-scoped trend data inside a
// PredictionContext.
type CategoryContext struct {
	Subcategories map[string]int `json:"subcategories"`
	SampleCount   int            `json:"sample_count"`
}

// PredictionContext is the exact payload handed to the prompt builder: the
// statistical context plus few-shot sample questions.
type PredictionContext struct {
	TotalAnalyzedQuestions int              `json:"total_analyzed_questions"`
	CategoryTrends         map[string]int   `json:"category_trends"`
	QuestionPatterns       map[string]int   `json:"question_patterns"`
	PopularTopics          []KeywordCount   `json:"popular_topics"`
	SampleQuestions        []Question       `json:"sample_questions"`
	YearsCovered           []string         `json:"years_covered"`
	CategorySpecific       *CategoryContext `json:"category_specific,omitempty"`
}

// TrendPrediction is the model's forecast for the upcoming exam. Field names
// mirror the JSON contract given to the model.
type TrendPrediction struct {
	PriorityTopics       []string          `json:"oncelikli_konular"`
	QuestionDistribution map[string]string `json:"soru_dagilimi_tahmini"`
	PointsOfAttention    []string          `json:"dikkat_edilmesi_gerekenler"`
	EmergingPatterns     []string          `json:"yeni_trend_tahminleri"`
	StudyStrategy        string            `json:"onerilen_calisma_stratejisi"`
}

// IsEmpty reports whether the prediction carries no content, the collapsed
// result of a failed or unparseable model response.
func (t *TrendPrediction) IsEmpty() bool {
	return t == nil || (len(t.PriorityTopics) == 0 &&
		len(t.QuestionDistribution) == 0 &&
		len(t.PointsOfAttention) == 0 &&
		len(t.EmergingPatterns) == 0 &&
		t.StudyStrategy == "")
}

// QuestionAnalysis is the model's structured review of a single question.
type QuestionAnalysis struct {
	Category         string   `json:"kategori"`
	Subcategory      string   `json:"alt_kategori"`
	Difficulty       string   `json:"zorluk"`
	LearningOutcomes []string `json:"kazanimlar"`
	Hints            []string `json:"ipuclari"`
	SimilarTraits    string   `json:"benzer_soru_ozellikleri"`
}

// PredictionRequest echoes the parameters of a generation request.
type PredictionRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Count       int    `json:"count"`
	Difficulty  string `json:"difficulty"`
}

// AnalysisSnapshot records which corpus slice informed a generation request.
type AnalysisSnapshot struct {
	TotalTrainingData   int      `json:"total_training_data"`
	CategorySampleCount int      `json:"category_sample_count"`
	YearsAnalyzed       []string `json:"years_analyzed"`
}

// PredictionRecord is one entry of the orchestrator's in-memory history,
// created per generation request.
type PredictionRecord struct {
	Timestamp          time.Time         `json:"timestamp"`
	Request            PredictionRequest `json:"request"`
	GeneratedQuestions []Question        `json:"generated_questions"`
	Success            bool              `json:"success"`
	AnalysisContext    AnalysisSnapshot  `json:"analysis_context"`
}

// ModelStatus describes the orchestrator and its training corpus.
type ModelStatus struct {
	Status                  string          `json:"status"`
	TotalTrainingQuestions  int             `json:"total_training_questions"`
	SupportedCategories     []string        `json:"supported_categories"`
	DifficultyLevels        []string        `json:"difficulty_levels"`
	GeneratedQuestionsCount int             `json:"generated_questions_count"`
	DataAnalysis            *AnalysisReport `json:"data_analysis"`
}

// CategoryStatistics aggregates the per-category corpus statistics exposed
// at the boundary.
type CategoryStatistics struct {
	CategoryDistribution    map[string]int            `json:"category_distribution"`
	SubcategoryDistribution map[string]map[string]int `json:"subcategory_distribution"`
	YearDistribution        map[string]int            `json:"year_distribution"`
	TopKeywords             []KeywordCount            `json:"top_keywords"`
}

// StoreStatistics aggregates the persisted question store by category,
// difficulty and provenance.
type StoreStatistics struct {
	TotalQuestions int            `json:"toplam_soru"`
	ByCategory     map[string]int `json:"konulara_gore"`
	ByDifficulty   map[string]int `json:"zorluklara_gore"`
	AIGenerated    int            `json:"ai_uretimi"`
	RealExam       int            `json:"gercek_sinav"`
}

// TrendForecast is the boundary payload of a trend prediction run.
type TrendForecast struct {
	Timestamp            time.Time        `json:"timestamp"`
	DataAnalysisSummary  AnalysisSummary  `json:"data_analysis_summary"`
	TrendPredictions     *TrendPrediction `json:"trend_predictions"`
	CategoryDistribution map[string]int   `json:"category_distribution"`
	QuestionPatterns     map[string]int   `json:"question_patterns"`
}

// AnalysisSummary is the compact header of a full analysis report.
type AnalysisSummary struct {
	TotalQuestions int `json:"total_questions"`
	Categories     int `json:"categories"`
	Years          int `json:"years"`
}

// QuestionReview is the boundary payload of a single-question analysis. An
// off-domain input yields a Warning instead of an Analysis; this is a
// designed business outcome, not an error.
type QuestionReview struct {
	Timestamp time.Time         `json:"timestamp"`
	Question  string            `json:"question"`
	Analysis  *QuestionAnalysis `json:"analysis,omitempty"`
	Warning   string            `json:"warning,omitempty"`
}
