package models

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// InterviewMode selects which prompt variant and required-field set
// apply to question generation.
type InterviewMode string

const (
	ModeGeneral      InterviewMode = "general"
	ModePersonalized InterviewMode = "personalized"
)

// Language codes supported by the interview pipeline.
const (
	LanguageEnglish  = "en"
	LanguageJapanese = "ja"
)

// ConversationTurn is one message in an interview conversation.
// A Conversation is append-only within a request; builders return new
// slices rather than mutating history in place.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Conversation []ConversationTurn

// InterviewContext carries the session data a question-generation call
// is rendered against. In personalized mode Resume and JobDescription
// must both be non-empty; the pipeline enforces this before any
// provider call.
type InterviewContext struct {
	Mode           InterviewMode
	Resume         string
	JobDescription string
	History        []ConversationTurn
	Language       string
}

// CallProfile is the fixed parameter set used for one pipeline
// operation. Profiles are not configurable per request.
type CallProfile struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	JSONResponse    bool
}

// QuestionResult is the normalized output of question generation.
type QuestionResult struct {
	Question string `json:"question"`
}

type EnglishSkill struct {
	Overall    float64 `json:"overall"`
	Vocabulary float64 `json:"vocabulary"`
	Grammar    float64 `json:"grammar"`
}

type InterviewSkill struct {
	Overall          float64 `json:"overall"`
	LogicalStructure float64 `json:"logicalStructure"`
	DataSupport      float64 `json:"dataSupport"`
}

type EvaluationSummary struct {
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	Actions      string `json:"actions"`
}

// EvaluationResult is the strict, fully-populated evaluation of a whole
// conversation. Partial results are never produced; a missing field
// fails the call instead.
type EvaluationResult struct {
	EnglishSkill   EnglishSkill      `json:"englishSkill"`
	InterviewSkill InterviewSkill    `json:"interviewSkill"`
	Summary        EvaluationSummary `json:"summary"`
	Language       string            `json:"language"`
}

// QAPair is one interview question paired with the candidate's answer,
// the unit of detailed feedback.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FeedbackItem is the per-question feedback record. A nil entry in a
// batch means the pair was skipped (beyond the quota, empty text, or
// malformed model output for that item).
type FeedbackItem struct {
	EnglishFeedback   string `json:"englishFeedback"`
	InterviewFeedback string `json:"interviewFeedback"`
	IdealAnswer       string `json:"idealAnswer"`
}

// TranscriptionResult is the speech-to-text outcome. Exactly one of
// Transcript or Error is set; transcription failures are values, not
// errors.
type TranscriptionResult struct {
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
}
