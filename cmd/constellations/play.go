package main

import (
	"github.com/spf13/cobra"

	"constellations/internal/config"
	"constellations/internal/desktop"
)

var (
	flagWidth   int
	flagHeight  int
	flagMute    bool
	flagShaders string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Examples:
  constellations play
  constellations play --seed 42
  constellations play --width 1280 --height 720 --mute
  constellations play --shaders ./assets/shaders`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Window width in pixels (overrides config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Window height in pixels (overrides config)")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
	cmd.Flags().StringVar(&flagShaders, "shaders", "", "Load shaders from this directory instead of the built-in set")
}

func init() {
	addPlayFlags(playCmd)
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("width") {
		cfg.Screen.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Screen.Height = flagHeight
	}
	if flags.Changed("mute") && flagMute {
		cfg.Audio.Enabled = false
	}
	if flags.Changed("shaders") {
		cfg.Assets.ShaderDir = flagShaders
	}
	return cfg, cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := desktop.Run(cfg, logger); err != nil {
		logger.Error("game stopped", "err", err)
		return err
	}
	return nil
}
