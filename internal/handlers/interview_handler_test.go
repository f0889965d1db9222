package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/apperrors"
	"mockmate/interview-api/internal/models"
)

type fakeInterviewService struct {
	question     *models.QuestionResult
	questionErr  error
	evaluation   *models.EvaluationResult
	evalErr      error
	feedbacks    []*models.FeedbackItem
	feedbackErr  error
	lastCtx      models.InterviewContext
	lastMaxCount int
	lastLanguage string
}

func (f *fakeInterviewService) GenerateQuestion(ctx context.Context, ictx models.InterviewContext) (*models.QuestionResult, error) {
	f.lastCtx = ictx
	return f.question, f.questionErr
}

func (f *fakeInterviewService) EvaluateConversation(ctx context.Context, history []models.ConversationTurn, language string) (*models.EvaluationResult, error) {
	f.lastLanguage = language
	return f.evaluation, f.evalErr
}

func (f *fakeInterviewService) GenerateDetailedFeedback(ctx context.Context, qaList []models.QAPair, maxCount int, language string) ([]*models.FeedbackItem, error) {
	f.lastMaxCount = maxCount
	f.lastLanguage = language
	return f.feedbacks, f.feedbackErr
}

func newTestApp(svc *fakeInterviewService) *fiber.App {
	app := fiber.New()
	handler := NewInterviewHandler(svc, 3)
	app.Post("/generate-questions", handler.HandleGenerateQuestions)
	app.Post("/evaluation", handler.HandleEvaluation)
	app.Post("/detailed-feedback", handler.HandleDetailedFeedback)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleGenerateQuestionsDefaultsModeAndLanguage(t *testing.T) {
	svc := &fakeInterviewService{question: &models.QuestionResult{Question: "Tell me more."}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/generate-questions", models.GenerateQuestionRequest{})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ModeGeneral, svc.lastCtx.Mode)
	assert.Equal(t, models.LanguageEnglish, svc.lastCtx.Language)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Tell me more.")
}

func TestHandleGenerateQuestionsLegacyModeAlias(t *testing.T) {
	svc := &fakeInterviewService{question: &models.QuestionResult{Question: "q"}}
	app := newTestApp(svc)

	postJSON(t, app, "/generate-questions", models.GenerateQuestionRequest{
		Mode:           "personalize",
		Resume:         "resume",
		JobDescription: "job",
	})

	assert.Equal(t, models.ModePersonalized, svc.lastCtx.Mode)
}

func TestHandleGenerateQuestionsClientErrorIs400(t *testing.T) {
	svc := &fakeInterviewService{questionErr: apperrors.NewClientConfig("interview.generate_question", "bad mode")}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/generate-questions", models.GenerateQuestionRequest{Mode: "robot"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGenerateQuestionsServerConfigErrorIs500(t *testing.T) {
	svc := &fakeInterviewService{questionErr: apperrors.NewConfig("prompts.resolve", "missing template")}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/generate-questions", models.GenerateQuestionRequest{})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleGenerateQuestionsUpstreamErrorIs502(t *testing.T) {
	svc := &fakeInterviewService{questionErr: apperrors.NewUpstream("gemini.generate", assert.AnError)}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/generate-questions", models.GenerateQuestionRequest{})

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleEvaluationValidationErrorIs500(t *testing.T) {
	svc := &fakeInterviewService{evalErr: apperrors.NewValidation("interview.evaluate", `missing "summary"`)}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/evaluation", models.EvaluationRequest{})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleEvaluationPassesLanguage(t *testing.T) {
	svc := &fakeInterviewService{evaluation: &models.EvaluationResult{Language: "ja"}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/evaluation", models.EvaluationRequest{Language: "ja"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ja", svc.lastLanguage)
}

func TestHandleDetailedFeedbackDefaultsMaxCount(t *testing.T) {
	svc := &fakeInterviewService{feedbacks: []*models.FeedbackItem{nil, nil}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/detailed-feedback", models.DetailedFeedbackRequest{
		QAList: []models.QAPair{{Question: "Q", Answer: "A"}},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, svc.lastMaxCount)
}

func TestHandleDetailedFeedbackExplicitMaxCount(t *testing.T) {
	zero := 0
	svc := &fakeInterviewService{feedbacks: []*models.FeedbackItem{nil}}
	app := newTestApp(svc)

	postJSON(t, app, "/detailed-feedback", models.DetailedFeedbackRequest{
		QAList:           []models.QAPair{{Question: "Q", Answer: "A"}},
		MaxFeedbackCount: &zero,
	})

	assert.Equal(t, 0, svc.lastMaxCount)
}

func TestHandleDetailedFeedbackKeepsNilPositions(t *testing.T) {
	svc := &fakeInterviewService{feedbacks: []*models.FeedbackItem{
		{EnglishFeedback: "e", InterviewFeedback: "i", IdealAnswer: "a"},
		nil,
	}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/detailed-feedback", models.DetailedFeedbackRequest{
		QAList: []models.QAPair{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: ""}},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed models.DetailedFeedbackResponse
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &parsed))

	require.Len(t, parsed.Feedbacks, 2)
	assert.NotNil(t, parsed.Feedbacks[0])
	assert.Nil(t, parsed.Feedbacks[1])
}

func TestHandleGenerateQuestionsMalformedBody(t *testing.T) {
	app := newTestApp(&fakeInterviewService{})

	req := httptest.NewRequest(http.MethodPost, "/generate-questions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
