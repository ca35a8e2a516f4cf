package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrShaderNotFound is returned when a pipeline id has no source file.
var ErrShaderNotFound = errors.New("shader source not found")

// Stage is a shader stage file extension.
type Stage string

const (
	StageVertex   Stage = "vert"
	StageFragment Stage = "frag"
)

// Sources loads GLSL text by id from a file system and injects the shared
// uniform block declaration into each.
type Sources struct {
	fsys fs.FS
	decl string
}

// NewSources reads <id>.vert and <id>.frag files from fsys. decl is
// inserted after each file's #version line.
func NewSources(fsys fs.FS, decl string) *Sources {
	return &Sources{fsys: fsys, decl: decl}
}

// Load returns the source of id for stage with the declaration injected.
func (s *Sources) Load(id string, stage Stage) (string, error) {
	name := id + "." + string(stage)
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrShaderNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return Inject(string(data), s.decl), nil
}

// Check verifies that every id has both stages present.
func (s *Sources) Check(pairs ...[2]string) error {
	for _, p := range pairs {
		if _, err := s.Load(p[0], StageVertex); err != nil {
			return err
		}
		if _, err := s.Load(p[1], StageFragment); err != nil {
			return err
		}
	}
	return nil
}

// Inject inserts decl after the #version directive of src. Sources without
// one get decl prepended.
func Inject(src, decl string) string {
	if decl == "" {
		return src
	}
	i := strings.Index(src, "#version")
	if i < 0 {
		return decl + src
	}
	nl := strings.IndexByte(src[i:], '\n')
	if nl < 0 {
		return src + "\n" + decl
	}
	at := i + nl + 1
	return src[:at] + decl + src[at:]
}
