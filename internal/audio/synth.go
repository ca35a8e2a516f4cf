package audio

import (
	"io"
	"math"
)

// Sound identifies a procedurally generated sound effect.
type Sound int

const (
	SoundChime   Sound = iota // constellation matched
	SoundHint                 // hint revealed
	SoundClick                // reset pressed
	SoundFanfare              // every constellation found
)

func (s Sound) String() string {
	switch s {
	case SoundChime:
		return "chime"
	case SoundHint:
		return "hint"
	case SoundClick:
		return "click"
	case SoundFanfare:
		return "fanfare"
	}
	return "unknown"
}

// sounds lists every effect, in Sound order.
var sounds = []Sound{SoundChime, SoundHint, SoundClick, SoundFanfare}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	putStereoF32LR(buf, i, sample, sample)
}

func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat saturates gently instead of clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalised progress [0,1]. attack, decay and
// release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns a two-operator FM sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// Generate renders s as interleaved stereo float32 samples.
func Generate(s Sound) []byte {
	switch s {
	case SoundChime:
		return genChime()
	case SoundHint:
		return genHint()
	case SoundClick:
		return genClick()
	case SoundFanfare:
		return genFanfare()
	}
	return nil
}

// render converts a mono mix into a stereo buffer.
func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// bells mixes FM bell notes, each starting step seconds after the previous
// one and ringing until the end.
func bells(notes []float64, step, tail, modRatio float64) []float64 {
	noteStep := int(step * SampleRate)
	total := len(notes)*noteStep + int(tail*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.003, 0.6, 0.05, 0.3)
			s := fm(t, freq, modRatio, 4.0*env) * env * 0.24
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.06
			mix[start+j] += s
		}
	}
	return mix
}

// genChime: rising pentatonic bells, like stars lighting up in turn.
func genChime() []byte {
	return render(bells([]float64{659.25, 783.99, 880.00, 1046.50, 1318.51}, 0.07, 0.6, 3.5))
}

// genFanfare: a slower, wider arpeggio with a sustained shimmer on top.
func genFanfare() []byte {
	mix := bells([]float64{392.00, 523.25, 659.25, 783.99, 1046.50, 1318.51, 1567.98}, 0.12, 1.2, 2.0)
	seed := uint64(0x5eed)
	for i := range mix {
		t := float64(i) / SampleRate
		env := adsr(float64(i)/float64(len(mix)), 0.3, 0.2, 0.6, 0.4)
		mix[i] += fm(t, 2093.0, 1.5, 1.2)*env*0.05 + lcg(&seed)*env*0.01
	}
	return render(mix)
}

// genHint: a soft two-note glint.
func genHint() []byte {
	return render(bells([]float64{1174.66, 1567.98}, 0.05, 0.3, 1.5))
}

// genClick: crisp click with a short falling tone.
func genClick() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		putStereoF32(buf, i, softSat(fm(t, freq, 1.0, 0.6)*env*0.38))
	}
	return buf
}
