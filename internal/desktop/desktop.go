// Package desktop runs the game in a GLFW window: it owns the GL context,
// translates input into controller calls and drives the render loop.
package desktop

import (
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"constellations/assets"
	"constellations/internal/audio"
	"constellations/internal/config"
	"constellations/internal/game"
	"constellations/internal/geom"
	"constellations/internal/render"
	"constellations/internal/shader"
)

// maxFrameDelta caps dt after stalls such as window drags.
const maxFrameDelta = 0.1

func shaderFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return assets.Shaders()
}

// Run opens the window and plays until it is closed. It must be called from
// the main goroutine.
func Run(cfg config.Config, logger *log.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.Screen)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	w, h := cfg.Screen.Width, cfg.Screen.Height
	maxStars := max(cfg.Level.MaxRandomPoints, cfg.Level.MaxConstellationPoints)

	layout := shader.MustLayout(shader.CommonUniforms)
	src := shader.NewSources(shaderFS(cfg.Assets.ShaderDir), layout.Declaration(shader.BlockName))
	if err := src.Check(render.SourcePairs(render.Layers(w, h, maxStars))...); err != nil {
		return fmt.Errorf("shader sources: %w", err)
	}
	scene, err := render.NewScene(src, layout, w, h, maxStars)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	defer scene.Destroy()

	face, err := game.LoadFace(cfg.Assets.FontPath, cfg.FontSize())
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	defer face.Close()

	bus := game.NewEventBus()
	bus.SubscribeAll(func(e game.Event) {
		logger.Debug("event", "type", e.Type, "level", e.Level, "completed", e.Completed, "hints", e.Hints)
	})

	if cfg.Audio.Enabled {
		player, err := audio.New(cfg.Audio, logger)
		if err != nil {
			logger.Warn("audio init failed, continuing without sound", "err", err)
		} else {
			player.Subscribe(bus)
			defer player.Close()
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = geom.ClockSeed()
	}
	logger.Info("starting", "seed", seed, "width", w, "height", h)

	ctrl := game.NewController(cfg, geom.NewRand(seed), glfwClock{}, bus, logger)
	gui := game.NewGUI(ctrl.Layout(), face)
	input := NewInput()

	var frame render.Frame
	var frameNo uint64
	start := glfw.GetTime()
	last := start
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := min(now-last, maxFrameDelta)
		last = now

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyR) {
			ctrl.Reset()
		}

		p, moved := input.Cursor(window, w, h)
		pressed, released := input.Button(window, glfw.MouseButtonLeft)
		if pressed {
			ctrl.PointerDown(p)
		}
		if moved {
			ctrl.PointerMove(p)
		}
		if released {
			ctrl.PointerUp(p)
		}
		ctrl.Update()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		view := ctrl.View()
		field := ctrl.Field()
		frameNo++
		frame.Uniforms = frameValues(ctrl, view, frameNo, float32(now-start), float32(dt), w, h)
		frame.Stars = field.Random
		frame.Constellation = field.ConstellationStars()
		frame.Overlay = gui.Draw(view)
		scene.Draw(&frame, fbW, fbH)

		window.SwapBuffers()
	}

	logger.Info("shutting down", "completed", ctrl.Session().Completed)
	return nil
}

func frameValues(ctrl *game.Controller, v game.View, n uint64, t, dt float32, w, h int) shader.FrameValues {
	ptr := ctrl.Pointer()
	r := v.Constellation
	progress := ctrl.Progress()
	return shader.FrameValues{
		Frame:      n,
		Time:       t,
		Delta:      dt,
		Resolution: [2]float32{float32(w), float32(h)},
		Pointer:    [2]float32{float32(ptr.X), float32(ptr.Y)},
		Progress:   float32(progress),
		Level:      int32(ctrl.Session().Level()),
		Hint:       v.Reveal,
		Reveal:     [4]float32{float32(r.X), float32(r.Y), float32(r.W), float32(r.H)},
		AuroraTint: game.AuroraTint(progress),
		Projection: shader.Ortho(float32(w), float32(h)),
	}
}
