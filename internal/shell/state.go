package shell

// State is the phase of the read-dispatch loop.
type State int

const (
	// Prompting waits for the next input line.
	Prompting State = iota
	// Dispatching routes a line to its handler and prints the reply.
	Dispatching
	// Terminated is final: the loop has returned.
	Terminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Prompting:
		return "Prompting"
	case Dispatching:
		return "Dispatching"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
