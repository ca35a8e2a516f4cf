// constellations is a star-matching puzzle: drag the reference shape onto
// the hidden constellation in the night sky.
//
// Usage:
//
//	constellations            - Play (same as "play")
//	constellations play       - Play the game
//	constellations facts      - List the star facts shown between levels
//	constellations layout     - Print the shared uniform block layout
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search order, then built-in)
//	--seed <value>      - Level generation seed (0 = clock)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "constellations",
	Short: "Constellations - match shapes to the stars",
	Long: `Constellations hides a shape among random stars. Drag the reference
shape from the bottom panel onto the constellation to reveal it, learn a fact
about the stars, and move on to a harder sky.

Controls:
  Mouse drag  - Move the reference shape
  R           - Restart from level 1
  Esc         - Quit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Level generation seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(layoutCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "constellations",
		Level:           level,
	}), nil
}
