// Package config provides YAML configuration for the game window, level
// progression, audio and asset locations.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full game configuration.
type Config struct {
	Screen ScreenConfig `yaml:"screen"`
	Level  LevelConfig  `yaml:"level"`
	Audio  AudioConfig  `yaml:"audio"`
	Assets AssetsConfig `yaml:"assets"`
	// Seed fixes level generation. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// ScreenConfig defines the window.
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// LevelConfig defines level sizing and progression. Divisors are applied to
// the screen width with integer division.
type LevelConfig struct {
	StartConstellationPoints int `yaml:"start_constellation_points"`
	StartRandomPoints        int `yaml:"start_random_points"`
	MaxConstellationPoints   int `yaml:"max_constellation_points"`
	MaxRandomPoints          int `yaml:"max_random_points"`
	ConstellationIncrement   int `yaml:"constellation_increment"`
	RandomIncrement          int `yaml:"random_increment"`
	MaxLevel                 int `yaml:"max_level"`
	Hints                    int `yaml:"hints"`

	MatchDivisor   int `yaml:"match_divisor"`
	RadiusDivisor  int `yaml:"radius_divisor"`
	StarMinDivisor int `yaml:"star_min_divisor"`
	StarMaxDivisor int `yaml:"star_max_divisor"`
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MusicVolume float64 `yaml:"music_volume"`
	SFXVolume   float64 `yaml:"sfx_volume"`
}

// AssetsConfig points at optional on-disk overrides of embedded assets.
type AssetsConfig struct {
	ShaderDir       string `yaml:"shader_dir"`
	FontPath        string `yaml:"font_path"`
	FontSizeDivisor int    `yaml:"font_size_divisor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  800,
			Height: 600,
			Title:  "Constellations",
			VSync:  true,
		},
		Level: LevelConfig{
			StartConstellationPoints: 4,
			StartRandomPoints:        25,
			MaxConstellationPoints:   8,
			MaxRandomPoints:          100,
			ConstellationIncrement:   1,
			RandomIncrement:          3,
			MaxLevel:                 42,
			Hints:                    3,
			MatchDivisor:             120,
			RadiusDivisor:            12,
			StarMinDivisor:           400,
			StarMaxDivisor:           200,
		},
		Audio: AudioConfig{
			Enabled:     true,
			MusicVolume: 0.35,
			SFXVolume:   0.6,
		},
		Assets: AssetsConfig{
			FontSizeDivisor: 40,
		},
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	l := c.Level
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case l.StartConstellationPoints < 3:
		return fmt.Errorf("%w: start_constellation_points %d < 3", ErrInvalid, l.StartConstellationPoints)
	case l.MaxConstellationPoints < l.StartConstellationPoints:
		return fmt.Errorf("%w: max_constellation_points %d < start %d", ErrInvalid, l.MaxConstellationPoints, l.StartConstellationPoints)
	case l.StartRandomPoints < 0 || l.MaxRandomPoints < l.StartRandomPoints:
		return fmt.Errorf("%w: random points start %d max %d", ErrInvalid, l.StartRandomPoints, l.MaxRandomPoints)
	case l.ConstellationIncrement < 0 || l.RandomIncrement < 0:
		return fmt.Errorf("%w: negative increment", ErrInvalid)
	case l.MaxLevel < 1:
		return fmt.Errorf("%w: max_level %d < 1", ErrInvalid, l.MaxLevel)
	case l.Hints < 0:
		return fmt.Errorf("%w: hints %d < 0", ErrInvalid, l.Hints)
	case l.MatchDivisor <= 0 || l.RadiusDivisor <= 0 || l.StarMinDivisor <= 0 || l.StarMaxDivisor <= 0:
		return fmt.Errorf("%w: divisors must be positive", ErrInvalid)
	case l.StarMaxDivisor > l.StarMinDivisor:
		return fmt.Errorf("%w: star_max_divisor %d gives a smaller radius than star_min_divisor %d", ErrInvalid, l.StarMaxDivisor, l.StarMinDivisor)
	case c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 || c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1:
		return fmt.Errorf("%w: volumes must be in [0, 1]", ErrInvalid)
	case c.Assets.FontSizeDivisor <= 0:
		return fmt.Errorf("%w: font_size_divisor %d", ErrInvalid, c.Assets.FontSizeDivisor)
	}
	return nil
}

// MatchThreshold is the match distance in pixels.
func (c Config) MatchThreshold() float64 {
	return float64(c.Screen.Width / c.Level.MatchDivisor)
}

// ConstellationRadius is the maximum constellation radius in pixels.
func (c Config) ConstellationRadius() int { return c.Screen.Width / c.Level.RadiusDivisor }

// StarRadii returns the min and max star radius in pixels, at least 1.
func (c Config) StarRadii() (int, int) {
	return max(1, c.Screen.Width/c.Level.StarMinDivisor), max(1, c.Screen.Width/c.Level.StarMaxDivisor)
}

// FontSize is the GUI font size in pixels.
func (c Config) FontSize() float64 {
	return float64(c.Screen.Width / c.Assets.FontSizeDivisor)
}
