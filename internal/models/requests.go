package models

// GenerateQuestionRequest is the body of POST /api/interview/generate-questions.
// "personalize" is accepted as a legacy alias for "personalized".
type GenerateQuestionRequest struct {
	Mode           string             `json:"mode"`
	Resume         string             `json:"resume"`
	JobDescription string             `json:"job_description"`
	MessageHistory []ConversationTurn `json:"message_history"`
	Language       string             `json:"language"`
}

type EvaluationRequest struct {
	MessageHistory []ConversationTurn `json:"message_history"`
	Language       string             `json:"language"`
}

type DetailedFeedbackRequest struct {
	QAList           []QAPair `json:"qa_list"`
	MaxFeedbackCount *int     `json:"max_feedback_count"`
	Language         string   `json:"language"`
}

type DetailedFeedbackResponse struct {
	Feedbacks []*FeedbackItem `json:"feedbacks"`
}

type TextToSpeechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// ClientLogEntry is one client-reported event appended to the access
// log, one JSON object per line.
type ClientLogEntry struct {
	UserID    string         `json:"userId"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

type ResumeUploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	ResumeText   string `json:"resume_text"`
	PageCount    int    `json:"page_count"`
}
