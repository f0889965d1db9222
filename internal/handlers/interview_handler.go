package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type InterviewHandler struct {
	interviewService        services.InterviewService
	defaultMaxFeedbackCount int
}

func NewInterviewHandler(interviewService services.InterviewService, defaultMaxFeedbackCount int) *InterviewHandler {
	return &InterviewHandler{
		interviewService:        interviewService,
		defaultMaxFeedbackCount: defaultMaxFeedbackCount,
	}
}

// HandleGenerateQuestions handles POST /api/interview/generate-questions
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.interviewService.GenerateQuestion(c.Context(), models.InterviewContext{
		Mode:           parseMode(req.Mode),
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
		History:        req.MessageHistory,
		Language:       parseLanguage(req.Language),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleEvaluation handles POST /api/interview/evaluation
func (h *InterviewHandler) HandleEvaluation(c *fiber.Ctx) error {
	var req models.EvaluationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.interviewService.EvaluateConversation(c.Context(), req.MessageHistory, parseLanguage(req.Language))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleDetailedFeedback handles POST /api/interview/detailed-feedback
func (h *InterviewHandler) HandleDetailedFeedback(c *fiber.Ctx) error {
	var req models.DetailedFeedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	maxCount := h.defaultMaxFeedbackCount
	if req.MaxFeedbackCount != nil {
		maxCount = *req.MaxFeedbackCount
	}

	feedbacks, err := h.interviewService.GenerateDetailedFeedback(c.Context(), req.QAList, maxCount, parseLanguage(req.Language))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.DetailedFeedbackResponse{Feedbacks: feedbacks})
}

// parseMode normalizes the wire value; "personalize" is the legacy
// spelling used by older clients.
func parseMode(mode string) models.InterviewMode {
	switch mode {
	case "", string(models.ModeGeneral):
		return models.ModeGeneral
	case "personalize", string(models.ModePersonalized):
		return models.ModePersonalized
	default:
		return models.InterviewMode(mode)
	}
}

func parseLanguage(language string) string {
	if language == "" {
		return models.LanguageEnglish
	}
	return language
}
