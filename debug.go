package hme

import (
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/tivo-community/hme-go/internal/registry"
)

// SceneSnapshot is a YAML-serializable snapshot of the scene graph,
// useful for logging and post-mortem debugging. Grounded on the
// teacher's BuildInfo() ad hoc string map (config/polycall.go),
// generalized here to a typed struct.
type SceneSnapshot struct {
	State      string           `yaml:"state"`
	Resolution Resolution       `yaml:"resolution"`
	Views      []ViewSnapshot   `yaml:"views"`
}

// ViewSnapshot is one view's state within a SceneSnapshot.
type ViewSnapshot struct {
	ID         uint32   `yaml:"id"`
	ParentID   uint32   `yaml:"parent_id,omitempty"`
	X          int32    `yaml:"x"`
	Y          int32    `yaml:"y"`
	W          int32    `yaml:"w"`
	H          int32    `yaml:"h"`
	Visible    bool     `yaml:"visible"`
	Painting   bool     `yaml:"painting"`
	ResourceID uint32   `yaml:"resource_id,omitempty"`
	Children   []uint32 `yaml:"children,omitempty"`
}

// DumpSceneGraph renders the current scene graph as YAML, for logging
// or attaching to a bug report.
func (s *Session) DumpSceneGraph() (string, error) {
	s.mu.Lock()
	snap := SceneSnapshot{
		State:      s.state.String(),
		Resolution: s.currentResolution,
	}
	s.walkViews(registry.RootViewID, &snap)
	s.mu.Unlock()

	out, err := yaml.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Session) walkViews(id uint32, snap *SceneSnapshot) {
	v, ok := s.reg.View(id)
	if !ok {
		return
	}
	snap.Views = append(snap.Views, ViewSnapshot{
		ID: v.ID, ParentID: v.ParentID,
		X: v.X, Y: v.Y, W: v.W, H: v.H,
		Visible: v.Visible, Painting: v.Painting,
		ResourceID: v.ResourceID, Children: v.Children,
	})
	for _, child := range v.Children {
		s.walkViews(child, snap)
	}
}

// fingerprint returns a short blake2b digest of data, used to log a
// stable identifier for a memento or handshake payload without logging
// the payload itself.
func fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	const shown = 8
	const hexDigits = "0123456789abcdef"
	out := make([]byte, shown*2)
	for i := 0; i < shown; i++ {
		out[i*2] = hexDigits[sum[i]>>4]
		out[i*2+1] = hexDigits[sum[i]&0xF]
	}
	return string(out)
}

// MementoFingerprint returns a short, stable identifier for a memento
// blob, suitable for log lines that must not contain the memento
// itself.
func MementoFingerprint(memento []byte) string {
	return fingerprint(memento)
}
