package player

// Action is an abstract input the frame loop can hold active.
type Action uint8

// Actions in the order Move applies them: turns before translations.
const (
	TurnLeft Action = iota
	TurnRight
	MoveForward
	MoveBack
	StrafeLeft
	StrafeRight
	SpeedModifier

	actionCount
)

var actionNames = [actionCount]string{
	TurnLeft:      "turn-left",
	TurnRight:     "turn-right",
	MoveForward:   "move-forward",
	MoveBack:      "move-back",
	StrafeLeft:    "strafe-left",
	StrafeRight:   "strafe-right",
	SpeedModifier: "speed-modifier",
}

// String returns the action's identifier.
func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ActionSet is a set of active actions stored as a bitset.
type ActionSet uint8

// NewActionSet returns a set holding the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.Add(a)
	}
	return s
}

// Add returns s with a included.
func (s ActionSet) Add(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

// Remove returns s without a.
func (s ActionSet) Remove(a Action) ActionSet {
	return s &^ (1 << a)
}

// Has reports whether a is active.
func (s ActionSet) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

// Empty reports whether no action is active.
func (s ActionSet) Empty() bool { return s == 0 }

// Actions lists the active actions in application order.
func (s ActionSet) Actions() []Action {
	var out []Action
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
