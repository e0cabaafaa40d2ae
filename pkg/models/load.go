package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by LoadMesh for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// LoadOptions tunes normal generation for meshes that ship without normals.
type LoadOptions struct {
	SmoothNormals bool
}

// LoadMesh picks a loader by file extension (.obj, .glb, .gltf).
func LoadMesh(path string) (*Mesh, error) {
	return LoadMeshWith(path, LoadOptions{})
}

// LoadMeshWith is LoadMesh with explicit options.
func LoadMeshWith(path string, opts LoadOptions) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		l := NewOBJLoader()
		l.SmoothNormals = opts.SmoothNormals
		return l.LoadFile(path)
	case ".glb", ".gltf":
		l := NewGLTFLoader()
		l.SmoothNormals = opts.SmoothNormals
		return l.Load(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
