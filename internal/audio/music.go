package audio

import (
	"math"
	"sync/atomic"
)

// ambientChords is the slow progression under the night sky. Each level
// starts the progression one chord later so the mood drifts as the
// player advances.
var ambientChords = [][]float64{
	{220.0, 261.6, 329.6, 392.0}, // Am7
	{174.6, 220.0, 261.6, 349.2}, // Fmaj7
	{261.6, 329.6, 392.0, 493.9}, // Cmaj7
	{196.0, 246.9, 293.7, 392.0}, // G
	{146.8, 174.6, 220.0, 293.7}, // Dm7
	{164.8, 207.7, 246.9, 329.6}, // E7
}

const (
	ambientTempo  = 1.1 // beats per second
	beatsPerChord = 8
)

func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}

func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	return softSat(b)
}

// fmPad stacks detuned FM oscillators per chord note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [4]float64{-0.004, -0.001, 0.002, 0.005}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.75*env) * 0.048
		}
	}
	return softSat(s)
}

func fmArp(t, freq, env float64) float64 {
	s := fm(t, freq, 2.0, 3.2*env) * env * 0.20
	s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
	return softSat(s)
}

// musicReader is an endless ambient loop. It never returns io.EOF.
type musicReader struct {
	t     float64
	seed  uint64
	level atomic.Int32
}

func newMusicReader(seed uint64) *musicReader {
	m := &musicReader{seed: seed}
	m.level.Store(1)
	return m
}

// SetLevel shifts the progression. Safe to call from any goroutine.
func (m *musicReader) SetLevel(level int) {
	m.level.Store(int32(level))
}

func (m *musicReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	offset := int(m.level.Load()) - 1
	for i := 0; i < samples; i++ {
		m.t += 1.0 / SampleRate

		beatLen := 1.0 / ambientTempo
		trig := math.Mod(m.t, beatLen)
		beatPos := trig / beatLen
		beat := int(m.t * ambientTempo)
		idx := (beat/beatsPerChord + offset) % len(ambientChords)
		chord := ambientChords[max(idx, 0)]

		s := m.mix(chord, trig, beatPos, beat)
		pan := 0.08 * math.Sin(2*math.Pi*0.05*m.t)
		air := lcg(&m.seed) * 0.004
		putStereoF32LR(p, i, softSat(s*(1-pan)+air), softSat(s*(1+pan)-air))
	}
	return samples * 8, nil
}

func (m *musicReader) mix(chord []float64, trig, beatPos float64, beat int) float64 {
	// Evolving pad with slow modulation.
	padMod := 0.5 + 0.5*math.Sin(m.t*0.25)
	s := fmPad(m.t, chord, padMod) * 1.1

	if beat%8 == 0 {
		be := adsr(beatPos, 0.05, 0.55, 0.3, 0.4)
		s += fmBass(m.t, chord[0]/2, be) * 0.7
	}
	if beat%4 == 0 {
		s += kick(trig) * 0.3
	}

	// Quarter-note arpeggio.
	arpEnv := adsr(beatPos, 0.03, 0.7, 0.1, 0.3)
	s += fmArp(m.t, chord[beat%len(chord)]*2, arpEnv) * 0.5

	// High shimmer, the twinkle of the stars.
	shimmerFreq := chord[2] * 4 * (1 + 0.01*math.Sin(m.t*0.7))
	shimmerEnv := 0.5 + 0.5*math.Sin(m.t*1.5)
	s += fm(m.t, shimmerFreq, 2.0, 1.5) * shimmerEnv * 0.04

	return s * 0.8
}
