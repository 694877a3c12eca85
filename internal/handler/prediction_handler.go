package handler

import (
	"net/url"

	"lgs-predict/internal/domain"
	"lgs-predict/internal/dto"
	"lgs-predict/internal/logger"
	"lgs-predict/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Only the last ten history records go over the wire.
const historyTailSize = 10

// PredictionHandler handles the question prediction HTTP surface.
type PredictionHandler struct {
	service service.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler instance
func NewPredictionHandler(service service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// RegisterRoutes wires all prediction endpoints under the given router.
func (h *PredictionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.Root)
	router.Get("/status", h.GetStatus)
	router.Get("/categories", h.GetCategories)
	router.Get("/categories/:category/subcategories", h.GetSubcategories)
	router.Post("/generate", h.GenerateQuestions)
	router.Get("/predict/trends", h.GetTrendPredictions)
	router.Post("/analyze", h.AnalyzeQuestion)
	router.Post("/classify", h.ClassifyQuestion)
	router.Get("/statistics", h.GetStatistics)
	router.Get("/sample/:category", h.GetSampleQuestions)
	router.Get("/history", h.GetHistory)
	router.Delete("/clear", h.ClearGenerated)
}

// Root reports API liveness.
func (h *PredictionHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "LGS Türkçe Soru Tahminleme API aktif",
		Data:    fiber.Map{"version": "1.0.0"},
	})
}

// GetStatus returns the orchestrator status and corpus analysis summary.
func (h *PredictionHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(h.service.Status()))
}

// GetCategories returns the supported categories with their distributions.
func (h *PredictionHandler) GetCategories(c *fiber.Ctx) error {
	stats := h.service.CategoryStatistics()
	return c.JSON(dto.NewSuccessResponse(dto.CategoriesResponse{
		SupportedCategories:     domain.SupportedCategories,
		CategoryDistribution:    stats.CategoryDistribution,
		SubcategoryDistribution: stats.SubcategoryDistribution,
	}))
}

// GetSubcategories returns the subcategories of one category.
func (h *PredictionHandler) GetSubcategories(c *fiber.Ctx) error {
	category := pathParam(c, "category")

	subcategories, err := h.service.Subcategories(category)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(dto.SubcategoriesResponse{
		Category:      category,
		Subcategories: subcategories,
	}))
}

// GenerateQuestions runs one generation request.
func (h *PredictionHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("failed to parse generation request body", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.PredictQuestions(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(record))
}

// GetTrendPredictions returns the exam trend forecast.
func (h *PredictionHandler) GetTrendPredictions(c *fiber.Ctx) error {
	forecast, err := h.service.PredictTrends(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse(forecast))
}

// AnalyzeQuestion reviews a submitted question text.
func (h *PredictionHandler) AnalyzeQuestion(c *fiber.Ctx) error {
	var req dto.AnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("failed to parse analysis request body", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.service.AnalyzeQuestion(c.UserContext(), req.QuestionText)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(review))
}

// ClassifyQuestion labels a question with one of the supported categories.
func (h *PredictionHandler) ClassifyQuestion(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("failed to parse classify request body", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.ClassifyTopic(c.UserContext(), req.QuestionText)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(dto.ClassifyResponse{Category: category}))
}

// GetStatistics returns corpus and store statistics.
func (h *PredictionHandler) GetStatistics(c *fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(dto.StatisticsResponse{
		Corpus: h.service.CategoryStatistics(),
		Store:  h.service.StoreStatistics(),
	}))
}

// GetSampleQuestions returns historical exemplars from one category.
func (h *PredictionHandler) GetSampleQuestions(c *fiber.Ctx) error {
	category := pathParam(c, "category")
	count := c.QueryInt("count", 5)

	samples, err := h.service.SampleQuestions(category, count)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(dto.SampleQuestionsResponse{
		Category:  category,
		Count:     len(samples),
		Questions: samples,
	}))
}

// GetHistory returns the tail of the generation history.
func (h *PredictionHandler) GetHistory(c *fiber.Ctx) error {
	history := h.service.History()
	tail := history
	if len(tail) > historyTailSize {
		tail = tail[len(tail)-historyTailSize:]
	}

	return c.JSON(dto.NewSuccessResponse(dto.HistoryResponse{
		TotalPredictions: len(history),
		History:          tail,
	}))
}

// pathParam decodes a path parameter; category names carry spaces and
// Turkish characters.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// ClearGenerated drops the generation history and the persisted AI output.
func (h *PredictionHandler) ClearGenerated(c *fiber.Ctx) error {
	removed, err := h.service.ClearGenerated()
	if err != nil {
		return err
	}

	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Üretilen sorular temizlendi",
		Data:    dto.ClearResponse{RemovedQuestions: removed},
	})
}
