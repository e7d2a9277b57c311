package world

// State represents the current generation phase.
type State int

const (
	// StateEmpty is the initial state before Initialize succeeds.
	StateEmpty State = iota
	// StateStarted means cells are seeded but no separation pass has run.
	StateStarted
	// StateExpanding means overlapping cells are being pushed apart.
	StateExpanding
	// StateConnecting means the layout is settled and the next step connects rooms.
	StateConnecting
	// StateFinished is terminal; further steps are no-ops.
	StateFinished
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStarted:
		return "started"
	case StateExpanding:
		return "expanding"
	case StateConnecting:
		return "connecting"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Status is the outcome of a single Step call.
type Status int

const (
	// StatusIdle means the generator has not been initialized.
	StatusIdle Status = iota
	// StatusInProgress means more steps are required.
	StatusInProgress
	// StatusDone means generation is finished.
	StatusDone
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}
