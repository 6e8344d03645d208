// Package assets provides textures by name, loading them from disk and
// falling back to procedural placeholders.
package assets

import (
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/placeholders"
	"chosenoffset.com/siderun/internal/render"
)

// Manager holds loaded textures keyed by name.
type Manager struct {
	textures map[string]render.Image
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{textures: make(map[string]render.Image)}
}

// Load populates the manager with every placeholder texture name, reading
// <dir>/<name>.png through loader and falling back to the generated
// placeholder when the file cannot be loaded.
func Load(dir string, loader render.ResourceLoader, r render.Renderer) *Manager {
	log := logger.For("assets")
	m := NewManager()

	images := placeholders.Images()
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, placeholders.FileName(name))
		if loader != nil {
			img, err := loader.LoadImage(path)
			if err == nil {
				m.Add(name, img)
				log.WithField("path", path).Debug("Loaded texture.")
				continue
			}
			log.WithFields(logrus.Fields{
				"path":  path,
				"error": err,
			}).Warn("Texture missing, using placeholder.")
		}
		m.Add(name, r.NewImageFromImage(images[name]))
	}
	return m
}

// Add registers or replaces a texture.
func (m *Manager) Add(name string, img render.Image) {
	m.textures[name] = img
}

// Texture looks a texture up by name.
func (m *Manager) Texture(name string) (render.Image, bool) {
	img, ok := m.textures[name]
	return img, ok
}

// Dispose releases every texture.
func (m *Manager) Dispose() {
	for name, img := range m.textures {
		img.Dispose()
		delete(m.textures, name)
	}
}
