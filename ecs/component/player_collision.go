package component

// PlayerCollision stores per-player contact state derived from the last
// physics step.
type PlayerCollision struct {
	// Grounded is set while the feet sensor touches a platform or the floor.
	Grounded bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
