package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

func samples(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestGenerate(t *testing.T) {
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			buf := Generate(s)
			if len(buf) == 0 {
				t.Fatal("empty buffer")
			}
			if len(buf)%8 != 0 {
				t.Fatalf("length %d is not whole stereo frames", len(buf))
			}
			var peak float64
			for i, v := range samples(buf) {
				if math.IsNaN(float64(v)) || v < -1 || v > 1 {
					t.Fatalf("sample %d = %v out of range", i, v)
				}
				peak = max(peak, math.Abs(float64(v)))
			}
			if peak < 0.01 {
				t.Errorf("peak %v, sound is silent", peak)
			}
		})
	}
}

func TestGenerateUnknown(t *testing.T) {
	if buf := Generate(Sound(42)); buf != nil {
		t.Errorf("unknown sound produced %d bytes", len(buf))
	}
	if s := Sound(42).String(); s != "unknown" {
		t.Errorf("String = %q", s)
	}
}

func TestFanfareOutlastsChime(t *testing.T) {
	if len(Generate(SoundFanfare)) <= len(Generate(SoundChime)) {
		t.Error("fanfare should be longer than the chime")
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	p := make([]byte, 3)

	n, err := r.Read(p)
	if n != 3 || err != nil {
		t.Fatalf("first Read = %d, %v", n, err)
	}
	n, err = r.Read(p)
	if n != 2 || err != nil {
		t.Fatalf("second Read = %d, %v", n, err)
	}
	if _, err = r.Read(p); !errors.Is(err, io.EOF) {
		t.Fatalf("third Read err = %v, expected EOF", err)
	}
}

func TestMusicReaderIsEndless(t *testing.T) {
	m := newMusicReader(1)
	p := make([]byte, 4096*8)
	for i := 0; i < 20; i++ {
		if i == 10 {
			m.SetLevel(4)
		}
		n, err := m.Read(p)
		if err != nil || n != len(p) {
			t.Fatalf("Read %d = %d, %v", i, n, err)
		}
	}
	for i, v := range samples(p) {
		if math.IsNaN(float64(v)) || v < -1 || v > 1 {
			t.Fatalf("sample %d = %v out of range", i, v)
		}
	}
}

func TestMusicReaderPartialFrame(t *testing.T) {
	m := newMusicReader(1)
	if n, err := m.Read(make([]byte, 7)); n != 0 || err != nil {
		t.Errorf("Read of short buffer = %d, %v", n, err)
	}
	n, err := m.Read(make([]byte, 20))
	if n != 16 || err != nil {
		t.Errorf("Read(20) = %d, %v, expected whole frames only", n, err)
	}
}

func TestADSR(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     float64
	}{
		{"start", 0, 0},
		{"attack peak", 0.1, 1},
		{"sustain", 0.5, 0.5},
		{"end", 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := adsr(tc.progress, 0.1, 0.2, 0.5, 0.2)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("adsr(%v) = %v, expected %v", tc.progress, got, tc.want)
			}
		})
	}
}
