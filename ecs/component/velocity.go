package component

// Velocity is the linear velocity of an entity in pixels per second. Gameplay
// writes it, PhysicsSystem pushes it into the body before each step and copies
// the integrated result back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
