package entity

import (
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/prefabs"
)

// NewSession creates the session singleton. It also carries the scene's
// sound cues; sounds without a loaded player stay silent.
func NewSession(w *ecs.World, clips []prefabs.AudioSpec, sounds map[string]component.Sound) (ecs.Entity, error) {
	b := newBuilder(w, "session")
	with(b, component.SessionComponent, &component.Session{State: component.SessionNotStarted})
	with(b, component.AudioComponent, buildAudioComponent(clips, sounds))
	return b.build()
}

func buildAudioComponent(clips []prefabs.AudioSpec, sounds map[string]component.Sound) *component.Audio {
	n := len(clips)
	a := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]component.Sound, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
	for _, clip := range clips {
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		a.Names = append(a.Names, clip.Name)
		a.Players = append(a.Players, sounds[clip.Name])
		a.Volume = append(a.Volume, volume)
	}
	return a
}
