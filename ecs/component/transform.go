package component

// Transform positions an entity. X and Y are the center of the entity, which
// matches where physics bodies keep their center of gravity.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
