package component

// Player carries the movement tuning of the controllable character.
type Player struct {
	MoveSpeed float64
	JumpSpeed float64
}

var PlayerComponent = NewComponent[Player]()
