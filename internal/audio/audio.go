// Package audio plays procedural music and sound effects in response to
// game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"constellations/internal/config"
	"constellations/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	sampleFormat = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Player owns the oto context. Effects are synthesised once at startup and
// replayed from memory.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	logger *log.Logger
	cfg    config.AudioConfig

	effects map[Sound][]byte

	mu     sync.Mutex
	music  oto.Player
	reader *musicReader
}

// New opens the audio device. The device may still be initialising when New
// returns; sounds requested before it is ready are dropped.
func New(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, sampleFormat)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	p := &Player{
		ctx:     ctx,
		ready:   ready,
		logger:  logger,
		cfg:     cfg,
		effects: make(map[Sound][]byte, len(sounds)),
	}
	for _, s := range sounds {
		p.effects[s] = Generate(s)
	}
	return p, nil
}

func (p *Player) isReady() bool {
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// Subscribe wires the player to controller events. Music starts on the
// first interaction.
func (p *Player) Subscribe(bus *game.EventBus) {
	bus.Subscribe(game.EventFirstInteraction, func(game.Event) { p.StartMusic() })
	bus.Subscribe(game.EventLevelStarted, func(e game.Event) { p.setLevel(e.Level) })
	bus.Subscribe(game.EventConstellationComplete, func(game.Event) { p.Play(SoundChime) })
	bus.Subscribe(game.EventHintUsed, func(game.Event) { p.Play(SoundHint) })
	bus.Subscribe(game.EventReset, func(game.Event) { p.Play(SoundClick) })
	bus.Subscribe(game.EventGameComplete, func(game.Event) { p.Play(SoundFanfare) })
}

// StartMusic starts the ambient loop once the device is ready, unless it is
// already playing.
func (p *Player) StartMusic() {
	if !p.isReady() {
		go func() {
			<-p.ready
			p.startMusic()
		}()
		return
	}
	p.startMusic()
}

func (p *Player) startMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music != nil {
		return
	}
	p.reader = newMusicReader(uint64(time.Now().UnixNano()))
	p.music = p.ctx.NewPlayer(p.reader)
	p.music.SetVolume(p.cfg.MusicVolume)
	p.music.Play()
	p.logger.Debug("music started")
}

func (p *Player) setLevel(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reader != nil {
		p.reader.SetLevel(level)
	}
}

// Play starts s on its own player and returns immediately.
func (p *Player) Play(s Sound) {
	data := p.effects[s]
	if len(data) == 0 || !p.isReady() {
		return
	}
	go func() {
		player := p.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(p.cfg.SFXVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.logger.Warn("close sound player", "sound", s, "err", err)
		}
	}()
}

// Close stops the music. Effects already playing finish on their own.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music == nil {
		return nil
	}
	err := p.music.Close()
	p.music = nil
	return err
}
