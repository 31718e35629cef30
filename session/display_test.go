package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayIdlePrompt(t *testing.T) {
	d := DisplayOf(initialState())
	assert.Equal(t, PromptText, d.Text)
	assert.False(t, d.Large)
	assert.True(t, d.SubmitEnabled)
	assert.Equal(t, SubmitLabel, d.SubmitLabel)
	assert.Equal(t, NoGuess, d.Guess)
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		state   State
		text    string
		label   string
		enabled bool
		phase   Phase
	}{
		{State{Waiting: true, Cooldown: 5, Guess: NoGuess}, WaitingText, "5...", false, Waiting},
		{State{Waiting: true, Guess: 3}, WaitingText, SubmitLabel, false, Waiting},
		{State{Cooldown: 2, Guess: 7}, "7", "2...", false, Cooldown},
		{State{Cooldown: 1, Guess: NoGuess}, PromptText, "1...", false, Cooldown},
		{State{Guess: 0}, "0", SubmitLabel, true, Idle},
	}

	for _, tt := range tests {
		d := DisplayOf(tt.state)
		assert.Equal(t, tt.text, d.Text, tt.state.String())
		assert.Equal(t, tt.label, d.SubmitLabel, tt.state.String())
		assert.Equal(t, tt.enabled, d.SubmitEnabled, tt.state.String())
		assert.Equal(t, tt.phase, tt.state.Phase())
	}
}

func TestDisplayLargeDigit(t *testing.T) {
	assert.True(t, DisplayOf(State{Guess: 5}).Large)
	assert.False(t, DisplayOf(State{Guess: 5, Waiting: true}).Large)
}
