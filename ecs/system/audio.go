package system

import (
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil {
				continue
			}
			if i < len(audioComp.Volume) {
				player.SetVolume(audioComp.Volume[i])
			}
			// Cues restart rather than overlap.
			_ = player.Rewind()
			player.Play()
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}
