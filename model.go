package kiln

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/kiln3d/kiln/mesh"
)

// Transform3 is a decomposed affine transform. The assembled matrix is
// translate * rotZ * rotY * rotX * scale * mirror, matching the order the
// gizmos accumulate their edits in.
type Transform3 struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3 // Euler angles, radians
	Scale       mgl64.Vec3
	Mirror      mgl64.Vec3
}

func IdentityTransform3() Transform3 {
	return Transform3{
		Scale:  mgl64.Vec3{1, 1, 1},
		Mirror: mgl64.Vec3{1, 1, 1},
	}
}

func (t Transform3) Matrix() mgl64.Mat4 {
	m := mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	m = m.Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
	m = m.Mul4(mgl64.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl64.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	m = m.Mul4(mgl64.Scale3D(t.Mirror.X(), t.Mirror.Y(), t.Mirror.Z()))
	return m
}

// ModelVolume is one mesh part of an object with its own local transform.
type ModelVolume struct {
	ID        uuid.UUID
	Name      string
	Mesh      *mesh.Mesh
	Transform Transform3
}

// ModelInstance places a whole object in the scene.
type ModelInstance struct {
	ID        uuid.UUID
	Transform Transform3
}

// ModelObject is a printable object: one or more mesh volumes, one or
// more placed instances, and the support points the SLA gizmo edits.
// Support points live in the untransformed local frame of the object.
type ModelObject struct {
	ID        uuid.UUID
	Name      string
	Volumes   []*ModelVolume
	Instances []*ModelInstance

	SupportPoints []mgl64.Vec3

	hull      *mesh.Mesh
	hullDirty bool
}

func NewModelObject(name string) *ModelObject {
	return &ModelObject{
		ID:        uuid.New(),
		Name:      name,
		hullDirty: true,
	}
}

func (o *ModelObject) AddVolume(name string, m *mesh.Mesh) *ModelVolume {
	v := &ModelVolume{
		ID:        uuid.New(),
		Name:      name,
		Mesh:      m,
		Transform: IdentityTransform3(),
	}
	o.Volumes = append(o.Volumes, v)
	o.hullDirty = true
	return v
}

func (o *ModelObject) AddInstance() *ModelInstance {
	i := &ModelInstance{
		ID:        uuid.New(),
		Transform: IdentityTransform3(),
	}
	o.Instances = append(o.Instances, i)
	return i
}

// SetVolumeTransform mutates one volume's transform and invalidates the
// cached convex hull.
func (o *ModelObject) SetVolumeTransform(i int, t Transform3) {
	if i < 0 || i >= len(o.Volumes) {
		return
	}
	o.Volumes[i].Transform = t
	o.hullDirty = true
}

// RawMesh merges every volume's mesh transformed into the object frame.
func (o *ModelObject) RawMesh() *mesh.Mesh {
	out := &mesh.Mesh{}
	for _, v := range o.Volumes {
		out.Merge(v.Mesh.Transformed(v.Transform.Matrix()))
	}
	return out
}

// ConvexHull returns the convex hull of the object's composite mesh in
// the object frame, cached until a volume transform or the volume set
// changes. Degenerate geometry yields a nil hull.
func (o *ModelObject) ConvexHull() *mesh.Mesh {
	if !o.hullDirty && o.hull != nil {
		return o.hull
	}
	raw := o.RawMesh()
	hull, err := mesh.ConvexHull3D(raw.Vertices)
	if err != nil {
		o.hull = nil
	} else {
		o.hull = hull
	}
	o.hullDirty = false
	return o.hull
}

// VolumeTransformSnapshot captures every volume matrix, used by lazy
// consumers to detect transform changes with a plain equality check.
func (o *ModelObject) VolumeTransformSnapshot() []mgl64.Mat4 {
	out := make([]mgl64.Mat4, len(o.Volumes))
	for i, v := range o.Volumes {
		out[i] = v.Transform.Matrix()
	}
	return out
}
