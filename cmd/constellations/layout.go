package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"constellations/internal/shader"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the shared uniform block",
	Long: `Prints the std140 uniform block injected into every shader, with the
byte offset and size of each member within the buffer. The first 16 bytes
hold the frame header.`,
	Args: cobra.NoArgs,
	Run:  runLayout,
}

func runLayout(cmd *cobra.Command, args []string) {
	l := shader.MustLayout(shader.CommonUniforms)
	fmt.Println(titleStyle.Render("Uniform block " + shader.BlockName))
	fmt.Println()
	fmt.Print(renderLayout(l))
	fmt.Println()
	fmt.Println(dimStyle.Render(l.Declaration(shader.BlockName)))
}

func renderLayout(l *shader.Layout) string {
	var b strings.Builder
	row := func(name, typ, source, offset, size string) string {
		return fmt.Sprintf("  %-14s %-6s %-12s %6s %5s", name, typ, source, offset, size)
	}
	b.WriteString(headerStyle.Render(row("NAME", "TYPE", "SOURCE", "OFFSET", "SIZE")))
	b.WriteString("\n")
	b.WriteString(row(shader.HeaderName, "vec4", "frame", "0", fmt.Sprint(shader.HeaderSize)))
	b.WriteString("\n")
	for _, e := range l.Entries {
		b.WriteString(row(e.Name, e.Type.String(), e.Source.String(), fmt.Sprint(shader.HeaderSize+e.Offset), fmt.Sprint(e.Size)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d bytes of uniforms, %d byte buffer", l.Size, l.BufferSize())))
	b.WriteString("\n")
	return b.String()
}
