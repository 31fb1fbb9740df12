package mesh

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateHull is returned when the input point cloud has no volume
// (fewer than four points, or all of them collinear/coplanar).
var ErrDegenerateHull = errors.New("mesh: degenerate point set, convex hull has no volume")

type hullFace struct {
	v      [3]int
	normal mgl64.Vec3
	d      float64
	alive  bool
}

// ConvexHull3D computes the convex hull of a 3D point cloud with the
// incremental algorithm: seed a tetrahedron from extreme points, then for
// every remaining point delete the faces it can see and re-triangulate
// the horizon loop towards it. Faces wind counter-clockwise seen from
// outside.
func ConvexHull3D(points []mgl64.Vec3) (*Mesh, error) {
	if len(points) < 4 {
		return nil, ErrDegenerateHull
	}

	var box [2]mgl64.Vec3
	box[0], box[1] = points[0], points[0]
	for _, p := range points {
		for i := 0; i < 3; i++ {
			box[0][i] = math.Min(box[0][i], p[i])
			box[1][i] = math.Max(box[1][i], p[i])
		}
	}
	scale := box[1].Sub(box[0]).Len()
	if scale == 0 {
		return nil, ErrDegenerateHull
	}
	eps := 1e-9 * scale

	seed, err := seedTetrahedron(points, eps)
	if err != nil {
		return nil, err
	}

	faces := make([]hullFace, 0, 4*len(points))
	addFace := func(a, b, c int) {
		va := points[a]
		n := points[b].Sub(va).Cross(points[c].Sub(va))
		l := n.Len()
		if l > 0 {
			n = n.Mul(1.0 / l)
		}
		faces = append(faces, hullFace{v: [3]int{a, b, c}, normal: n, d: n.Dot(va), alive: true})
	}

	// Orient the seed tetrahedron so every face points away from its
	// opposite vertex.
	tet := [4][3]int{
		{seed[0], seed[1], seed[2]},
		{seed[0], seed[3], seed[1]},
		{seed[0], seed[2], seed[3]},
		{seed[1], seed[3], seed[2]},
	}
	opposite := [4]int{seed[3], seed[2], seed[1], seed[0]}
	for i, f := range tet {
		va := points[f[0]]
		n := points[f[1]].Sub(va).Cross(points[f[2]].Sub(va))
		if n.Dot(points[opposite[i]].Sub(va)) > 0 {
			f[1], f[2] = f[2], f[1]
		}
		addFace(f[0], f[1], f[2])
	}

	inSeed := map[int]bool{seed[0]: true, seed[1]: true, seed[2]: true, seed[3]: true}

	type dirEdge struct{ a, b int }
	for pi, p := range points {
		if inSeed[pi] {
			continue
		}

		visible := make([]int, 0, 8)
		for fi := range faces {
			if faces[fi].alive && faces[fi].normal.Dot(p)-faces[fi].d > eps {
				visible = append(visible, fi)
			}
		}
		if len(visible) == 0 {
			continue
		}

		// Horizon edges are the ones owned by exactly one visible face.
		// Directed edges keep the winding of the dying faces so the new
		// fan stays outward-oriented.
		edgeCount := make(map[dirEdge]int, 3*len(visible))
		for _, fi := range visible {
			f := faces[fi].v
			for j := 0; j < 3; j++ {
				a, b := f[j], f[(j+1)%3]
				lo, hi := a, b
				if lo > hi {
					lo, hi = hi, lo
				}
				edgeCount[dirEdge{lo, hi}]++
			}
		}
		for _, fi := range visible {
			faces[fi].alive = false
		}
		for _, fi := range visible {
			f := faces[fi].v
			for j := 0; j < 3; j++ {
				a, b := f[j], f[(j+1)%3]
				lo, hi := a, b
				if lo > hi {
					lo, hi = hi, lo
				}
				if edgeCount[dirEdge{lo, hi}] == 1 {
					addFace(a, b, pi)
				}
			}
		}
	}

	return compactHull(points, faces), nil
}

// seedTetrahedron picks four points spanning a non-zero volume: the most
// distant axis-extreme pair, the point farthest from their line, then the
// point farthest from the resulting plane.
func seedTetrahedron(points []mgl64.Vec3, eps float64) ([4]int, error) {
	var out [4]int

	best := -1.0
	for axis := 0; axis < 3; axis++ {
		lo, hi := 0, 0
		for i, p := range points {
			if p[axis] < points[lo][axis] {
				lo = i
			}
			if p[axis] > points[hi][axis] {
				hi = i
			}
		}
		if d := points[hi].Sub(points[lo]).Len(); d > best {
			best = d
			out[0], out[1] = lo, hi
		}
	}
	if best <= eps {
		return out, ErrDegenerateHull
	}

	dir := points[out[1]].Sub(points[out[0]]).Normalize()
	best = -1.0
	for i, p := range points {
		v := p.Sub(points[out[0]])
		if d := v.Sub(dir.Mul(v.Dot(dir))).Len(); d > best {
			best = d
			out[2] = i
		}
	}
	if best <= eps {
		return out, ErrDegenerateHull
	}

	n := points[out[1]].Sub(points[out[0]]).Cross(points[out[2]].Sub(points[out[0]])).Normalize()
	best = -1.0
	for i, p := range points {
		if d := math.Abs(n.Dot(p.Sub(points[out[0]]))); d > best {
			best = d
			out[3] = i
		}
	}
	if best <= eps {
		return out, ErrDegenerateHull
	}
	return out, nil
}

func compactHull(points []mgl64.Vec3, faces []hullFace) *Mesh {
	remap := make(map[int]int)
	out := &Mesh{}
	for _, f := range faces {
		if !f.alive {
			continue
		}
		var tri [3]int
		for j, vi := range f.v {
			ni, ok := remap[vi]
			if !ok {
				ni = len(out.Vertices)
				remap[vi] = ni
				out.Vertices = append(out.Vertices, points[vi])
			}
			tri[j] = ni
		}
		out.Faces = append(out.Faces, tri)
	}
	return out
}
