package component

// Obstacle marks a bomb. Touching one ends the session.
type Obstacle struct{}

var ObstacleComponent = NewComponent[Obstacle]()
