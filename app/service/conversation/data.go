package conversation

import "politix/app/service/intent"

type Status int

const (
	Running Status = iota
	Terminated
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// State is what the dialogue remembers between turns.
type State struct {
	// lastIntent is the most recent recognised non-farewell label, empty before the first one.
	lastIntent intent.Label
}
