package component

// Collectible is a star. Index is its slot in the star row.
type Collectible struct {
	Index   int
	BounceY float64
	Points  int
}

var CollectibleComponent = NewComponent[Collectible]()
