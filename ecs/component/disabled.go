package component

// Disabled hides an entity and removes it from the simulation without
// destroying it.
type Disabled struct{}

var DisabledComponent = NewComponent[Disabled]()
