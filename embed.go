// Package formmodal provides the embedded default configuration and an
// overlay filesystem that checks local disk first, falling back to embedded.
package formmodal

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed configs/config.yaml
var rawConfigs embed.FS

// Configs is the embedded configs filesystem with the "configs/" prefix stripped.
var Configs = mustSub(rawConfigs, "configs")

// ConfigFile is the name of the config file inside a config directory.
const ConfigFile = "config.yaml"

// DefaultConfig returns the embedded default config file.
func DefaultConfig() []byte {
	data, err := fs.ReadFile(Configs, ConfigFile)
	if err != nil {
		panic(err)
	}
	return data
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}
