package fault

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("accept: %w", Conflictf("request no longer available"))
	assert.Equal(t, Conflict, KindOf(err))
	assert.True(t, Is(err, Conflict))
	assert.False(t, Is(err, NotFound))
	assert.Equal(t, "request no longer available", Message(err))
}

func TestKindOfPlainError(t *testing.T) {
	err := fmt.Errorf("boom")
	assert.Equal(t, Unknown, KindOf(err))
	assert.False(t, Is(nil, Unknown))
	assert.Equal(t, "boom", Message(err))
}

func TestTransitionMessage(t *testing.T) {
	err := Transition("confirm completion", "marked complete by the volunteer")
	assert.Equal(t, InvalidTransition, err.Kind)
	assert.Equal(t, "cannot confirm completion: request must be marked complete by the volunteer", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("duplicate key")
	err := Wrap(Conflict, cause, "reference already recorded")
	assert.Equal(t, "reference already recorded: duplicate key", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}
