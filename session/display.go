package session

import (
	"fmt"
	"strconv"
)

const (
	WaitingText = "Waiting for prediction..."
	PromptText  = "Draw a number!"
	SubmitLabel = "Submit"
)

// Display is the read-only view the presentation layer renders.
type Display struct {
	Text          string `json:"text"`
	Large         bool   `json:"large"`
	Guess         int    `json:"guess"`
	Waiting       bool   `json:"waiting"`
	Cooldown      int    `json:"cooldown"`
	SubmitEnabled bool   `json:"submitEnabled"`
	SubmitLabel   string `json:"submitLabel"`
}

func DisplayOf(s State) Display {
	d := Display{
		Guess:         s.Guess,
		Waiting:       s.Waiting,
		Cooldown:      s.Cooldown,
		SubmitEnabled: s.CanSubmit(),
		SubmitLabel:   SubmitLabel,
	}

	switch {
	case s.Waiting:
		d.Text = WaitingText
	case s.Guess == NoGuess:
		d.Text = PromptText
	default:
		d.Text = strconv.Itoa(s.Guess)
		d.Large = true
	}

	if s.Cooldown > 0 {
		d.SubmitLabel = fmt.Sprintf("%d...", s.Cooldown)
	}
	return d
}
