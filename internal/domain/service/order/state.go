package order

// State is a step of order assembly.
type State int

const (
	StateInitializing State = iota
	StateCustomerResolved
	StateRowsBuilt
	StateValidated
	StateSubmitted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateCustomerResolved:
		return "customer-resolved"
	case StateRowsBuilt:
		return "rows-built"
	case StateValidated:
		return "validated"
	case StateSubmitted:
		return "submitted"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateRejected
}

//nolint:gochecknoglobals
var transitions = map[State]State{
	StateInitializing:     StateCustomerResolved,
	StateCustomerResolved: StateRowsBuilt,
	StateRowsBuilt:        StateValidated,
	StateValidated:        StateSubmitted,
}

// CanTransition reports whether assembly may move from s to next. Any
// non-terminal state may be rejected.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}

	if next == StateRejected {
		return true
	}

	return transitions[s] == next
}
