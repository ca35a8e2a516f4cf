package main

import (
	"strings"
	"testing"

	"constellations/internal/game"
	"constellations/internal/shader"
)

func TestRenderLayout(t *testing.T) {
	out := renderLayout(shader.MustLayout(shader.CommonUniforms))
	for _, want := range []string{"uFrame", "uTime", "uProjection", "mat4", "projection", "160 byte buffer"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFacts(t *testing.T) {
	out := renderFacts(game.StarFacts)
	if got := strings.Count(out, "\n"); got < len(game.StarFacts) {
		t.Errorf("rendered %d lines for %d facts", got, len(game.StarFacts))
	}
	if !strings.Contains(out, "1.") {
		t.Error("facts are not numbered")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cmd := playCmd
	t.Cleanup(func() {
		flagWidth, flagHeight, flagMute, flagSeed = 0, 0, false, 0
	})
	if err := cmd.ParseFlags([]string{"--width", "1024", "--height", "768", "--mute"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Screen.Width != 1024 || cfg.Screen.Height != 768 {
		t.Errorf("screen = %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Audio.Enabled {
		t.Error("--mute left audio enabled")
	}
}
