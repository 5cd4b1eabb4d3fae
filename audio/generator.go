package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/aether/vmath"
)

// envelope shapes a finite streamer with a linear attack and exponential release over total samples
type envelope struct {
	streamer beep.Streamer
	total    int
	attack   int
	position int
}

func newEnvelope(s beep.Streamer, total, attack int) *envelope {
	if attack < 1 {
		attack = 1
	}
	return &envelope{streamer: s, total: total, attack: attack}
}

// gain returns the envelope level at sample i, 1 at the end of the attack and ~0.01 at total
func (e *envelope) gain(i int) float64 {
	if i < e.attack {
		return float64(i) / float64(e.attack)
	}
	tail := float64(i-e.attack) / float64(max(e.total-e.attack, 1))
	return math.Exp(-4.6 * tail)
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// WhooshGenerator is filtered noise under a rising tone, swelling toward the end of its span
type WhooshGenerator struct {
	sr    beep.SampleRate
	span  int
	pos   int
	noise *vmath.FastRand
	lp    float64
	phase float64
}

// NewWhooshGenerator creates a whoosh lasting span samples
func NewWhooshGenerator(sr beep.SampleRate, span int) *WhooshGenerator {
	return &WhooshGenerator{
		sr:    sr,
		span:  max(span, 1),
		noise: vmath.NewFastRand(0x5eed),
	}
}

func (g *WhooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.span), 1)

		// Low-pass cutoff opens as the sweep rises
		alpha := 0.02 + 0.25*progress
		g.lp += alpha * (vmath.Signed(g.noise) - g.lp)

		// Tone sweeps 60Hz to 240Hz
		freq := 60 + 180*progress*progress
		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase--
		}
		tone := math.Sin(2 * math.Pi * g.phase)

		// Swell then cut off in the last tenth
		amp := 0.35 * math.Sin(math.Pi*math.Min(progress*0.55, 0.5))
		if progress > 0.9 {
			amp *= (1 - progress) * 10
		}

		sample := amp * (0.7*g.lp + 0.3*tone)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WhooshGenerator) Err() error {
	return nil
}
