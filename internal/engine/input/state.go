package input

// State holds the movement flags gathered over one fixed step.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool
	Jump     bool
	Up       bool
	Down     bool
}

// Or merges other into s. A flag set in any frame of a step stays set until
// the step consumes it.
func (s State) Or(other State) State {
	return State{
		Forward:  s.Forward || other.Forward,
		Backward: s.Backward || other.Backward,
		Left:     s.Left || other.Left,
		Right:    s.Right || other.Right,
		Run:      s.Run || other.Run,
		Jump:     s.Jump || other.Jump,
		Up:       s.Up || other.Up,
		Down:     s.Down || other.Down,
	}
}

// Empty reports whether no flag is set.
func (s State) Empty() bool {
	return s == State{}
}
