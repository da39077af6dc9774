package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

type meshConfig struct {
	Vertices []r3.Vector `json:"vertices"`
	Faces    [][3]int    `json:"faces"`
}

// MarshalJSON encodes the mesh as its vertex and face lists.
func (m *Mesh) MarshalJSON() ([]byte, error) {
	if m == nil {
		return json.Marshal(meshConfig{})
	}
	return json.Marshal(meshConfig{Vertices: m.vertices, Faces: m.faces})
}

// UnmarshalJSON decodes a mesh and checks that every face indexes an existing vertex.
func (m *Mesh) UnmarshalJSON(data []byte) error {
	var cfg meshConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	for i, f := range cfg.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(cfg.Vertices) {
				return errors.Errorf("mesh face %d references vertex %d of %d", i, idx, len(cfg.Vertices))
			}
		}
	}
	*m = *NewMesh(cfg.Vertices, cfg.Faces)
	return nil
}
