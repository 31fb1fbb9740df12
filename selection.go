package kiln

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// Selection is the gizmos' read view of what the user has picked: an
// object, one of its instances, and optionally a single volume. The
// gizmos query it fresh each frame and never mutate it.
type Selection struct {
	Object   *ModelObject
	Instance int
	Volume   int // -1 selects the whole instance
}

func SelectInstance(o *ModelObject, instance int) *Selection {
	return &Selection{Object: o, Instance: instance, Volume: -1}
}

func SelectVolume(o *ModelObject, instance, volume int) *Selection {
	return &Selection{Object: o, Instance: instance, Volume: volume}
}

func (s *Selection) IsEmpty() bool {
	return s == nil || s.Object == nil || s.Instance < 0 || s.Instance >= len(s.Object.Instances)
}

func (s *Selection) IsSingleFullInstance() bool {
	return !s.IsEmpty() && s.Volume < 0
}

func (s *Selection) IsSingleVolume() bool {
	return !s.IsEmpty() && s.Volume >= 0 && s.Volume < len(s.Object.Volumes)
}

func (s *Selection) instanceMatrix() mgl64.Mat4 {
	return s.Object.Instances[s.Instance].Transform.Matrix()
}

// BoundingBox is the world-space box around the selected geometry.
func (s *Selection) BoundingBox() geom.Box3 {
	var box geom.Box3
	if s.IsEmpty() {
		return box
	}
	inst := s.instanceMatrix()
	if s.IsSingleVolume() {
		v := s.Object.Volumes[s.Volume]
		return v.Mesh.BoundingBox().Transformed(inst.Mul4(v.Transform.Matrix()))
	}
	for _, v := range s.Object.Volumes {
		box.MergeBox(v.Mesh.BoundingBox().Transformed(inst.Mul4(v.Transform.Matrix())))
	}
	return box
}

func (s *Selection) Center() mgl64.Vec3 {
	return s.BoundingBox().Center()
}

// Height is the vertical extent of the selection, the cut gizmo's clamp
// range.
func (s *Selection) Height() float64 {
	box := s.BoundingBox()
	if !box.Defined {
		return 0
	}
	return math.Max(box.Size().Z(), 0)
}
