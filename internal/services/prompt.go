package services

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"mockmate/interview-api/internal/apperrors"
)

// Operation names in the prompt catalog.
const (
	OpInterviewQuestion = "interview_question"
	OpEvaluation        = "evaluation"
	OpDetailedFeedback  = "detailed_feedback"
)

// VariantGeneral is the fallback variant every operation must carry.
const VariantGeneral = "general"

// TemplateRecord is one prompt entry: a system instruction plus an
// optional user-message template with {placeholder} variables.
type TemplateRecord struct {
	System       string `json:"system"`
	UserTemplate string `json:"user_template,omitempty"`
}

// PromptCatalog maps operation name to variant key to template.
// Loaded once and treated as read-only afterwards.
type PromptCatalog struct {
	operations map[string]map[string]TemplateRecord
}

// LoadPromptCatalog reads the structured prompt file from disk. An
// unreadable path or malformed document is a configuration error.
func LoadPromptCatalog(path string) (*PromptCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigWrap("prompts.load", fmt.Sprintf("failed to read prompt file %s", path), err)
	}

	var operations map[string]map[string]TemplateRecord
	if err := json.Unmarshal(data, &operations); err != nil {
		return nil, apperrors.NewConfigWrap("prompts.load", fmt.Sprintf("failed to parse prompt file %s", path), err)
	}

	return &PromptCatalog{operations: operations}, nil
}

// Resolve returns the template for an operation and variant key,
// falling back to the "general" variant when the requested key is
// absent. Missing both is a configuration error.
func (pc *PromptCatalog) Resolve(operation, variant string) (TemplateRecord, error) {
	variants, ok := pc.operations[operation]
	if !ok {
		return TemplateRecord{}, apperrors.NewConfig("prompts.resolve", fmt.Sprintf("unknown prompt operation %q", operation))
	}

	if record, ok := variants[variant]; ok {
		return record, nil
	}
	if record, ok := variants[VariantGeneral]; ok {
		return record, nil
	}

	return TemplateRecord{}, apperrors.NewConfig("prompts.resolve",
		fmt.Sprintf("operation %q has neither variant %q nor a %q fallback", operation, variant, VariantGeneral))
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// RenderTemplate substitutes {name} placeholders from vars. Missing
// variables substitute the empty string rather than failing, so
// inessential personalization fields can never break a request.
func RenderTemplate(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		return vars[name]
	})
}
