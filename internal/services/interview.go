package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"mockmate/interview-api/internal/apperrors"
	"mockmate/interview-api/internal/models"
)

// PlaceholderQuestion is returned when the model's payload carries no
// usable question text. Question generation degrades to it rather than
// failing.
const PlaceholderQuestion = "Tell me about your experience and skills related to this position."

type InterviewService interface {
	GenerateQuestion(ctx context.Context, ictx models.InterviewContext) (*models.QuestionResult, error)
	EvaluateConversation(ctx context.Context, history []models.ConversationTurn, language string) (*models.EvaluationResult, error)
	GenerateDetailedFeedback(ctx context.Context, qaList []models.QAPair, maxCount int, language string) ([]*models.FeedbackItem, error)
}

type interviewService struct {
	catalog *PromptCatalog
	invoker ChatInvoker
	log     zerolog.Logger

	questionProfile   models.CallProfile
	evaluationProfile models.CallProfile
	feedbackProfile   models.CallProfile
}

func NewInterviewService(catalog *PromptCatalog, invoker ChatInvoker, model string, log zerolog.Logger) InterviewService {
	return &interviewService{
		catalog: catalog,
		invoker: invoker,
		log:     log.With().Str("service", "interview").Logger(),
		questionProfile: models.CallProfile{
			Model:           model,
			Temperature:     0.7,
			TopP:            0.9,
			MaxOutputTokens: 500,
			JSONResponse:    true,
		},
		evaluationProfile: models.CallProfile{
			Model:           model,
			Temperature:     0.3,
			MaxOutputTokens: 1024,
			JSONResponse:    true,
		},
		feedbackProfile: models.CallProfile{
			Model:           model,
			Temperature:     0.3,
			MaxOutputTokens: 1024,
			JSONResponse:    true,
		},
	}
}

// GenerateQuestion renders the mode-specific prompt and normalizes the
// model output into a question. Malformed model output never fails
// this operation; it degrades down to PlaceholderQuestion.
func (s *interviewService) GenerateQuestion(ctx context.Context, ictx models.InterviewContext) (*models.QuestionResult, error) {
	switch ictx.Mode {
	case models.ModeGeneral:
	case models.ModePersonalized:
		if strings.TrimSpace(ictx.Resume) == "" || strings.TrimSpace(ictx.JobDescription) == "" {
			return nil, apperrors.NewClientConfig("interview.generate_question",
				"personalized mode requires both resume and job_description")
		}
	default:
		return nil, apperrors.NewClientConfig("interview.generate_question",
			fmt.Sprintf("unknown interview mode %q", ictx.Mode))
	}

	record, err := s.catalog.Resolve(OpInterviewQuestion, string(ictx.Mode))
	if err != nil {
		return nil, err
	}

	userPrompt := RenderTemplate(record.UserTemplate, map[string]string{
		"resume":          ictx.Resume,
		"job_description": ictx.JobDescription,
	})

	conversation := BuildConversation(record.System, ictx.History)
	conversation = append(conversation, models.ConversationTurn{
		Role:    models.RoleUser,
		Content: userPrompt,
	})

	raw, err := s.invoker.Invoke(ctx, conversation, s.questionProfile)
	if err != nil {
		return nil, err
	}

	return &models.QuestionResult{Question: normalizeQuestion(raw)}, nil
}

// EvaluateConversation asks the model to score the whole conversation
// and validates the result strictly: every one of the nine leaf fields
// must be present or the call fails. No partial evaluation is returned.
func (s *interviewService) EvaluateConversation(ctx context.Context, history []models.ConversationTurn, language string) (*models.EvaluationResult, error) {
	record, err := s.catalog.Resolve(OpEvaluation, language)
	if err != nil {
		return nil, err
	}

	userPrompt := RenderTemplate(record.UserTemplate, map[string]string{
		"language": language,
	})

	conversation := BuildConversation(record.System, history)
	conversation = append(conversation, models.ConversationTurn{
		Role:    models.RoleUser,
		Content: userPrompt,
	})

	raw, err := s.invoker.Invoke(ctx, conversation, s.evaluationProfile)
	if err != nil {
		return nil, err
	}

	payload, ok := parsePayload(raw)
	if !ok {
		return nil, apperrors.NewValidation("interview.evaluate", "evaluation response is not a JSON object")
	}

	result, err := buildEvaluationResult(payload)
	if err != nil {
		return nil, err
	}
	result.Language = language

	return result, nil
}

// GenerateDetailedFeedback produces one feedback item per QA pair, in
// input order. Pairs beyond the quota or with empty question/answer
// text are skipped without a provider call; a malformed response for
// one pair nils that position and processing continues. The output
// always has the same length as the input.
func (s *interviewService) GenerateDetailedFeedback(ctx context.Context, qaList []models.QAPair, maxCount int, language string) ([]*models.FeedbackItem, error) {
	feedbacks := make([]*models.FeedbackItem, len(qaList))
	if len(qaList) == 0 {
		return feedbacks, nil
	}

	record, err := s.catalog.Resolve(OpDetailedFeedback, language)
	if err != nil {
		return nil, err
	}

	for i, qa := range qaList {
		if i >= maxCount {
			continue
		}
		if strings.TrimSpace(qa.Question) == "" || strings.TrimSpace(qa.Answer) == "" {
			continue
		}

		userPrompt := RenderTemplate(record.UserTemplate, map[string]string{
			"question": qa.Question,
			"answer":   qa.Answer,
			"language": language,
		})

		conversation := BuildConversation(record.System, nil)
		conversation = append(conversation, models.ConversationTurn{
			Role:    models.RoleUser,
			Content: userPrompt,
		})

		raw, err := s.invoker.Invoke(ctx, conversation, s.feedbackProfile)
		if err != nil {
			return nil, err
		}

		item, ok := normalizeFeedbackItem(raw)
		if !ok {
			s.log.Warn().Int("index", i).Msg("skipping malformed feedback item")
			continue
		}
		feedbacks[i] = item
	}

	return feedbacks, nil
}

// parsePayload parses raw model output into a tagged (object, ok)
// form. All downstream field checks run against the parsed object;
// the payload is never treated as free-form again.
func parsePayload(raw string) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// normalizeQuestion repairs the question payload: the legacy
// interview_question key is renamed, a raw_response field serves as a
// secondary source, and a fixed placeholder covers everything else.
// Unparseable content is returned verbatim as the question.
func normalizeQuestion(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return PlaceholderQuestion
	}

	payload, ok := parsePayload(raw)
	if !ok {
		return raw
	}

	question := stringField(payload, "question")
	if question == "" {
		question = stringField(payload, "interview_question")
	}
	if question == "" {
		question = stringField(payload, "raw_response")
	}
	if question == "" {
		question = PlaceholderQuestion
	}

	if reaction := stringField(payload, "reaction"); reaction != "" {
		question = reaction + " " + question
	}

	return question
}

var evaluationFields = map[string][]string{
	"englishSkill":   {"overall", "vocabulary", "grammar"},
	"interviewSkill": {"overall", "logicalStructure", "dataSupport"},
	"summary":        {"strengths", "improvements", "actions"},
}

func buildEvaluationResult(payload map[string]any) (*models.EvaluationResult, error) {
	sections := make(map[string]map[string]any, len(evaluationFields))

	for section, fields := range evaluationFields {
		obj, ok := payload[section].(map[string]any)
		if !ok {
			return nil, apperrors.NewValidation("interview.evaluate",
				fmt.Sprintf("evaluation response is missing %q", section))
		}
		for _, field := range fields {
			if _, ok := obj[field]; !ok {
				return nil, apperrors.NewValidation("interview.evaluate",
					fmt.Sprintf("evaluation response is missing %q", section+"."+field))
			}
		}
		sections[section] = obj
	}

	english := sections["englishSkill"]
	interview := sections["interviewSkill"]
	summary := sections["summary"]

	return &models.EvaluationResult{
		EnglishSkill: models.EnglishSkill{
			Overall:    numberField(english, "overall"),
			Vocabulary: numberField(english, "vocabulary"),
			Grammar:    numberField(english, "grammar"),
		},
		InterviewSkill: models.InterviewSkill{
			Overall:          numberField(interview, "overall"),
			LogicalStructure: numberField(interview, "logicalStructure"),
			DataSupport:      numberField(interview, "dataSupport"),
		},
		Summary: models.EvaluationSummary{
			Strengths:    stringField(summary, "strengths"),
			Improvements: stringField(summary, "improvements"),
			Actions:      stringField(summary, "actions"),
		},
	}, nil
}

func normalizeFeedbackItem(raw string) (*models.FeedbackItem, bool) {
	payload, ok := parsePayload(raw)
	if !ok {
		return nil, false
	}

	for _, field := range []string{"englishFeedback", "interviewFeedback", "idealAnswer"} {
		if _, ok := payload[field]; !ok {
			return nil, false
		}
	}

	return &models.FeedbackItem{
		EnglishFeedback:   stringField(payload, "englishFeedback"),
		InterviewFeedback: stringField(payload, "interviewFeedback"),
		IdealAnswer:       stringField(payload, "idealAnswer"),
	}, true
}

func stringField(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func numberField(payload map[string]any, key string) float64 {
	if value, ok := payload[key].(float64); ok {
		return value
	}
	return 0
}

// extractJSON strips markdown fences and trims to the outermost JSON
// object or array, since the model may wrap its payload in formatting.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
