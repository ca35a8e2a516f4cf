// Package assets embeds the GLSL sources. Each pipeline id has a .vert
// and/or .frag file under shaders/.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders/*.vert shaders/*.frag
var files embed.FS

// Shaders returns the embedded shader directory rooted at shaders/.
func Shaders() fs.FS {
	sub, err := fs.Sub(files, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}
