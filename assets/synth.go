package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/stargather/common"
)

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator is a fixed-length tone whose frequency glides from freq to
// endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	position int
	length   int
	wave     waveform
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newOscillator(wave waveform, freq, endFreq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:    freq,
		endFreq: endFreq,
		length:  rate.N(d),
		wave:    wave,
		rate:    rate,
		noise:   rand.New(rand.NewPCG(uint64(freq), uint64(endFreq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			v = -1
			if o.phase < 0.5 {
				v = 1
			}
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		case waveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.position) / float64(o.length)
		f := common.Lerp(o.freq, o.endFreq, t)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a stream of known length.
type fade struct {
	s        beep.Streamer
	position int
	length   int
	attack   int
	release  int
}

func newFade(s beep.Streamer, length, attack, release int) beep.Streamer {
	return &fade{s: s, length: length, attack: attack, release: release}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if f.attack > 0 && f.position < f.attack {
			g = float64(f.position) / float64(f.attack)
		}
		if rem := f.length - f.position; f.release > 0 && rem < f.release {
			g *= math.Max(0, float64(rem)/float64(f.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func tone(wave waveform, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	return newFade(newOscillator(wave, from, to, d, rate), n, rate.N(5*time.Millisecond), n/3)
}

func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// cueStreamer builds the named cue and its length in samples. Cues are
// short, so they are rendered up front rather than streamed.
func cueStreamer(name string, rate beep.SampleRate) (beep.Streamer, int, error) {
	switch name {
	case "collect":
		s := beep.Seq(
			tone(waveSquare, 988, 988, 60*time.Millisecond, rate),
			tone(waveSquare, 1319, 1319, 180*time.Millisecond, rate),
		)
		return volume(s, 0.35), rate.N(60*time.Millisecond) + rate.N(180*time.Millisecond), nil
	case "gameover":
		d := 700 * time.Millisecond
		s := beep.Mix(
			tone(waveSaw, 440, 55, d, rate),
			volume(tone(waveNoise, 1, 1, d, rate), 0.3),
		)
		return volume(s, 0.4), rate.N(d), nil
	default:
		return nil, 0, fmt.Errorf("assets: unknown cue %q", name)
	}
}

// SynthesizeCue renders a cue as 16-bit little-endian stereo PCM.
func SynthesizeCue(name string, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("assets: invalid sample rate %d", sampleRate)
	}
	cue, length, err := cueStreamer(name, beep.SampleRate(sampleRate))
	if err != nil {
		return nil, err
	}
	s := beep.Take(length, cue)

	out := make([]byte, 0, length*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("assets: render %s: %w", name, err)
	}
	return out, nil
}
