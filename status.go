package behaviortreex

// Status is both the result of a tick and the stored state of a behavior.
type Status uint8

const (
	// Invalid is the state of a behavior that has never been ticked or was Reset.
	Invalid Status = iota
	Success
	Failure
	Running
	// Aborted is only reachable through Abort (or Terminate); Decide never returns it.
	Aborted
)

func (s Status) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an activation.
func (s Status) Terminal() bool {
	return s == Success || s == Failure || s == Aborted
}

// decision reports whether s is a legal Decide result.
func (s Status) decision() bool {
	return s == Success || s == Failure || s == Running
}
