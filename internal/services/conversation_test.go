package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
)

func TestBuildConversationEmptyHistory(t *testing.T) {
	conversation := BuildConversation("You are an interviewer.", nil)

	require.Len(t, conversation, 1)
	assert.Equal(t, models.RoleSystem, conversation[0].Role)
	assert.Contains(t, conversation[0].Content, "You are an interviewer.")
	assert.Contains(t, conversation[0].Content, formatInstruction)
	assert.NotContains(t, conversation[0].Content, noRepeatInstruction)
}

func TestBuildConversationWithHistory(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleAssistant, Content: "Tell me about yourself."},
		{Role: models.RoleUser, Content: "I build backend services."},
	}

	conversation := BuildConversation("You are an interviewer.", history)

	require.Len(t, conversation, 3)
	assert.Equal(t, models.RoleSystem, conversation[0].Role)
	assert.Contains(t, conversation[0].Content, noRepeatInstruction)
	assert.Contains(t, conversation[0].Content, formatInstruction)
	assert.Equal(t, history[0], conversation[1])
	assert.Equal(t, history[1], conversation[2])
}

func TestBuildConversationDoesNotMutateHistory(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "original"},
	}

	conversation := BuildConversation("system", history)
	conversation[1].Content = "mutated"

	assert.Equal(t, "original", history[0].Content)
}
