package component

// Sound is the subset of *audio.Player the audio system drives.
type Sound interface {
	IsPlaying() bool
	Rewind() error
	Play()
	Pause()
	SetVolume(volume float64)
}

type Audio struct {
	Names   []string
	Players []Sound
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Trigger queues the named cue for playback on the next audio update.
func (a *Audio) Trigger(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n != name || i >= len(a.Play) {
			continue
		}
		a.Play[i] = true
		return true
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
