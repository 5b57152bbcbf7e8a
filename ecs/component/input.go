package component

// Input stores the directional signals sampled this frame.
type Input struct {
	Left  bool
	Right bool
	Up    bool
}

var InputComponent = NewComponent[Input]()
