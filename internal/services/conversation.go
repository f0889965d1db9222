package services

import (
	"mockmate/interview-api/internal/models"
)

const (
	formatInstruction   = "Respond only with a single JSON object in the required format, with no surrounding text."
	noRepeatInstruction = "The conversation so far is included. Do not repeat any question you have already asked."
)

// BuildConversation assembles the message sequence sent to the model:
// the system instruction followed by the prior turns in their original
// order. History itself is never modified. With prior turns present
// the system prompt additionally tells the model not to repeat earlier
// questions; without them only the format instruction applies, so the
// model is signalled whether continuity constraints are in effect.
func BuildConversation(systemPrompt string, history []models.ConversationTurn) models.Conversation {
	system := systemPrompt + "\n\n" + formatInstruction
	if len(history) > 0 {
		system = systemPrompt + "\n\n" + noRepeatInstruction + "\n" + formatInstruction
	}

	conversation := make(models.Conversation, 0, len(history)+1)
	conversation = append(conversation, models.ConversationTurn{
		Role:    models.RoleSystem,
		Content: system,
	})
	conversation = append(conversation, history...)

	return conversation
}
