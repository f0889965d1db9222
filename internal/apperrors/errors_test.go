package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMatching(t *testing.T) {
	assert.ErrorIs(t, NewConfig("op", "detail"), ErrConfig)
	assert.ErrorIs(t, NewClientConfig("op", "detail"), ErrConfig)
	assert.ErrorIs(t, NewRender("op", "detail"), ErrRender)
	assert.ErrorIs(t, NewUpstream("op", errors.New("boom")), ErrUpstream)
	assert.ErrorIs(t, NewValidation("op", "detail"), ErrValidation)

	assert.NotErrorIs(t, NewValidation("op", "detail"), ErrUpstream)
}

func TestIsClient(t *testing.T) {
	assert.True(t, IsClient(NewClientConfig("op", "bad mode")))
	assert.False(t, IsClient(NewConfig("op", "missing template")))
	assert.False(t, IsClient(errors.New("plain")))
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstream("gemini.generate", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "gemini.generate")
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := NewValidation("interview.evaluate", `evaluation response is missing "summary"`)

	assert.Contains(t, err.Error(), "interview.evaluate")
	assert.Contains(t, err.Error(), `missing "summary"`)
}
