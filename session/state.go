package session

import "fmt"

// NoGuess marks a session that has not received a prediction yet.
const NoGuess = -1

type Phase int

const (
	Idle Phase = iota
	Waiting
	Cooldown
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "IDLE"
	case Waiting:
		return "WAITING"
	case Cooldown:
		return "COOLDOWN"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the submission state. Cooldown counts the whole seconds left
// before submit is enabled again and runs independently of Waiting.
type State struct {
	Waiting  bool `json:"waiting"`
	Cooldown int  `json:"cooldown"`
	Guess    int  `json:"guess"`
}

func initialState() State {
	return State{Guess: NoGuess}
}

// Phase collapses the state into the IDLE/WAITING/COOLDOWN machine. An
// in-flight request takes precedence over the countdown.
func (s State) Phase() Phase {
	switch {
	case s.Waiting:
		return Waiting
	case s.Cooldown > 0:
		return Cooldown
	default:
		return Idle
	}
}

func (s State) CanSubmit() bool {
	return s.Phase() == Idle
}

func (s State) String() string {
	if s.Phase() == Cooldown {
		return fmt.Sprintf("COOLDOWN(%d) guess=%d", s.Cooldown, s.Guess)
	}
	return fmt.Sprintf("%s cooldown=%d guess=%d", s.Phase(), s.Cooldown, s.Guess)
}
