package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"constellations/internal/game"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(5).Align(lipgloss.Right)
	factStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).PaddingLeft(1).Width(72)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "List the star facts",
	Long:  `Shows every fact the game can display after a constellation is found.`,
	Args:  cobra.NoArgs,
	Run:   runFacts,
}

func runFacts(cmd *cobra.Command, args []string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%d star facts", len(game.StarFacts))))
	fmt.Println()
	fmt.Print(renderFacts(game.StarFacts))
}

func renderFacts(facts []string) string {
	var b strings.Builder
	for i, f := range facts {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			indexStyle.Render(fmt.Sprintf("%d.", i+1)),
			factStyle.Render(f),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
