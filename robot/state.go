package robot

// State is the validation state of a Robot.
type State int

// A robot starts Uninitialized, is Assembling while it re-derives its kinematics after a mutation, and settles on
// Valid or Invalid.
const (
	StateUninitialized State = iota
	StateAssembling
	StateValid
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAssembling:
		return "assembling"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
