package component

import "github.com/jakecoffman/cp"

// BodyKind classifies bodies for the collision table.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyPlayer
	BodyPlatform
	BodyStar
	BodyBomb
	BodyBounds
)

func (k BodyKind) String() string {
	switch k {
	case BodyPlayer:
		return "player"
	case BodyPlatform:
		return "platform"
	case BodyStar:
		return "star"
	case BodyBomb:
		return "bomb"
	case BodyBounds:
		return "bounds"
	default:
		return "none"
	}
}

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// A Radius > 0 makes a circle, otherwise Width x Height is a box.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Kind   BodyKind
	Width  float64
	Height float64
	Radius float64
	Mass   float64
	// Bounce is the restitution, multiplied by the other shape's on contact.
	Bounce             float64
	Friction           float64
	Static             bool
	CollideWorldBounds bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
