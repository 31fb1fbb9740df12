package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hpinc/go3mf"
)

// Load3MF reads a 3MF package and returns one merged mesh per build item,
// keyed by the object name (falling back to the object id). Component
// objects are skipped; only mesh objects contribute geometry.
func Load3MF(path string) (map[string]*Mesh, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open 3mf %q: %w", path, err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decode 3mf %q: %w", path, err)
	}

	out := make(map[string]*Mesh)
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		m := &Mesh{
			Vertices: make([]mgl64.Vec3, 0, len(obj.Mesh.Vertices.Vertex)),
			Faces:    make([][3]int, 0, len(obj.Mesh.Triangles.Triangle)),
		}
		for _, v := range obj.Mesh.Vertices.Vertex {
			m.Vertices = append(m.Vertices, mgl64.Vec3{float64(v.X()), float64(v.Y()), float64(v.Z())})
		}
		for _, t := range obj.Mesh.Triangles.Triangle {
			m.Faces = append(m.Faces, [3]int{int(t.V1), int(t.V2), int(t.V3)})
		}
		name := obj.Name
		if name == "" {
			name = fmt.Sprintf("object-%d", obj.ID)
		}
		out[name] = m
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("3mf %q: no mesh objects", path)
	}
	return out, nil
}
