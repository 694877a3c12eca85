package generation

import (
	"context"
	"encoding/json"
	"strings"

	"lgs-predict/internal/config"
	"lgs-predict/internal/domain"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/util"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// generatedQuestion is the JSON item contract the model is asked to emit.
type generatedQuestion struct {
	Number      int               `json:"soru_no"`
	Category    string            `json:"kategori"`
	Subcategory string            `json:"alt_baslik"`
	Difficulty  string            `json:"zorluk"`
	Passage     string            `json:"metin"`
	Stem        string            `json:"soru"`
	Options     map[string]string `json:"secenekler"`
	Answer      string            `json:"dogru_cevap"`
	Explanation string            `json:"aciklama"`
}

// Client implements domain.QuestionGenerator on top of a langchaingo model.
// Parse failures collapse to empty results; only transport errors surface.
type Client struct {
	llm      llms.Model
	searcher domain.SimilaritySearcher
	cfg      config.GeminiConfig
}

// NewGoogleAIModel builds the Gemini-backed langchaingo model. Safety
// filters are disabled, the corpus is school exam material.
func NewGoogleAIModel(ctx context.Context, cfg config.GeminiConfig) (llms.Model, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
		googleai.WithHarmThreshold(googleai.HarmBlockNone),
	)
	if err != nil {
		return nil, domain.NewError(domain.CodeConfiguration, "failed to initialize Gemini client", err)
	}
	return model, nil
}

// NewClient wraps an llm into the generator port. searcher may be nil;
// prompts are then built without a vector-search section.
func NewClient(llm llms.Model, searcher domain.SimilaritySearcher, cfg config.GeminiConfig) *Client {
	return &Client{llm: llm, searcher: searcher, cfg: cfg}
}

// GenerateQuestions produces up to count drafts for the category. A
// response that parses to nothing yields an empty slice, not an error.
func (c *Client) GenerateQuestions(ctx context.Context, pctx *domain.PredictionContext, category, subcategory string, count int, difficulty string) ([]domain.Draft, error) {
	l := logger.Get()

	similar := c.similarDocuments(ctx, category, subcategory)
	prompt := buildGenerationPrompt(pctx, category, subcategory, count, difficulty, similar)

	raw, err := c.call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	drafts := c.parseDrafts(raw)
	if len(drafts) == 0 {
		l.Warn("model response yielded no usable questions",
			zap.String("category", category),
			zap.String("response_head", util.Truncate(raw, 200)))
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts, nil
}

// PredictTrends forecasts the upcoming exam. An unparseable response
// collapses to an empty prediction.
func (c *Client) PredictTrends(ctx context.Context, pctx *domain.PredictionContext) (*domain.TrendPrediction, error) {
	raw, err := c.call(ctx, buildTrendPrompt(pctx))
	if err != nil {
		return nil, err
	}

	trend := &domain.TrendPrediction{}
	if obj := ExtractJSONObject(raw); obj != "" {
		if err := json.Unmarshal([]byte(obj), trend); err != nil {
			logger.Get().Warn("failed to parse trend prediction JSON", zap.Error(err))
			return &domain.TrendPrediction{}, nil
		}
	}
	return trend, nil
}

// AnalyzeQuestion reviews a single question text.
func (c *Client) AnalyzeQuestion(ctx context.Context, questionText string) (*domain.QuestionAnalysis, error) {
	raw, err := c.call(ctx, buildAnalysisPrompt(questionText))
	if err != nil {
		return nil, err
	}

	analysis := &domain.QuestionAnalysis{}
	if obj := ExtractJSONObject(raw); obj != "" {
		if err := json.Unmarshal([]byte(obj), analysis); err != nil {
			logger.Get().Warn("failed to parse question analysis JSON", zap.Error(err))
			return &domain.QuestionAnalysis{}, nil
		}
	}
	return analysis, nil
}

// ClassifyTopic labels a question with a category, snapping the raw reply
// onto the canonical label when it contains one.
func (c *Client) ClassifyTopic(ctx context.Context, questionText string) (string, error) {
	raw, err := c.call(ctx, buildClassifyPrompt(questionText))
	if err != nil {
		return "", err
	}

	predicted := strings.TrimSpace(raw)
	lower := strings.ToLower(predicted)
	for _, category := range domain.SupportedCategories {
		if strings.Contains(lower, strings.ToLower(category)) {
			return category, nil
		}
	}
	return predicted, nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithTopP(c.cfg.TopP),
		llms.WithTopK(c.cfg.TopK),
		llms.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			l.Error("Gemini request timed out", zap.Duration("timeout", c.cfg.Timeout))
		} else {
			l.Error("Gemini request failed", zap.Error(err))
		}
		return "", domain.NewGenerationFailureError(err)
	}
	return response, nil
}

// parseDrafts tries the JSON contract first and falls back to prose
// extraction when the model answered outside it.
func (c *Client) parseDrafts(raw string) []domain.Draft {
	l := logger.Get()

	if arr := ExtractJSONArray(raw); arr != "" {
		var items []generatedQuestion
		if err := json.Unmarshal([]byte(arr), &items); err != nil {
			l.Warn("failed to parse generated question JSON, falling back to prose extraction", zap.Error(err))
		} else {
			var drafts []domain.Draft
			for _, item := range items {
				d, ok := draftFromItem(item)
				if !ok {
					l.Warn("dropping incomplete generated question", zap.Int("soru_no", item.Number))
					continue
				}
				drafts = append(drafts, d)
			}
			return drafts
		}
	}
	return ExtractDraftsFromProse(raw)
}

// draftFromItem validates one JSON item. Stem and all four options are
// required; answer and difficulty are normalized rather than rejected.
func draftFromItem(item generatedQuestion) (domain.Draft, bool) {
	stem := strings.TrimSpace(item.Stem)
	if stem == "" {
		return domain.Draft{}, false
	}
	options := make(map[string]string, len(domain.OptionLabels))
	for _, label := range domain.OptionLabels {
		text := strings.TrimSpace(item.Options[label])
		if text == "" {
			return domain.Draft{}, false
		}
		options[label] = text
	}

	var body strings.Builder
	if passage := strings.TrimSpace(item.Passage); passage != "" {
		body.WriteString(passage)
		body.WriteString("\n\n")
	}
	body.WriteString(stem)
	body.WriteString("\n\n")
	for _, label := range domain.OptionLabels {
		body.WriteString(label)
		body.WriteString(") ")
		body.WriteString(options[label])
		body.WriteString("\n")
	}

	answer, _ := domain.NormalizeCorrectAnswer(item.Answer)
	explanation := strings.TrimSpace(item.Explanation)
	if explanation == "" {
		explanation = missingExplanation
	}
	difficulty, _ := domain.NormalizeDifficulty(item.Difficulty)

	return domain.Draft{
		Body:          strings.TrimSpace(body.String()),
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Subcategory:   strings.TrimSpace(item.Subcategory),
		Difficulty:    difficulty,
	}, true
}

// similarDocuments queries the optional vector index. Failures degrade to
// an empty reference set.
func (c *Client) similarDocuments(ctx context.Context, category, subcategory string) []domain.SimilarDocument {
	if c.searcher == nil {
		return nil
	}
	query := category
	if subcategory != "" {
		query += " " + subcategory
	}
	docs, err := c.searcher.Query(ctx, query, 3, category)
	if err != nil {
		logger.Get().Warn("similarity search failed, continuing without references", zap.Error(err))
		return nil
	}
	return docs
}
