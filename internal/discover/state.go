package discover

// State is a step of the convergence loop.
type State int

const (
	StateSeed State = iota
	StateBuild
	StateRun
	StateScan
	StateAccumulate
	StatePrompt
	StateDone
)

var stateNames = [...]string{
	StateSeed:       "seed",
	StateBuild:      "build",
	StateRun:        "run",
	StateScan:       "scan",
	StateAccumulate: "accumulate",
	StatePrompt:     "prompt",
	StateDone:       "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// next returns the state following s. Only StatePrompt branches, on the
// user's answer.
func next(s State, affirmative bool) State {
	switch s {
	case StateSeed:
		return StateBuild
	case StateBuild:
		return StateRun
	case StateRun:
		return StateScan
	case StateScan:
		return StateAccumulate
	case StateAccumulate:
		return StatePrompt
	case StatePrompt:
		if affirmative {
			return StateDone
		}
		return StateBuild
	default:
		return StateDone
	}
}
