package lenscomplex

import (
	"math"

	"cogentcore.org/core/math32"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Homogeneous 4x4 maps are gonum dense matrices, row-major, acting on column vectors
// (x, y, z, 1).

// affineShear is x' = x + ((x - p)·n) w.
func affineShear(p, n, w r3.Vec) *mat.Dense {
	np := r3.Dot(n, p)
	wv := [3]float64{w.X, w.Y, w.Z}
	nv := [3]float64{n.X, n.Y, n.Z}
	m := mat.NewDense(4, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := wv[r] * nv[c]
			if r == c {
				v++
			}
			m.Set(r, c, v)
		}
		m.Set(r, 3, -wv[r]*np)
	}
	m.Set(3, 3, 1)
	return m
}

// lensProjective maps q to P + f (q - P) / ((q - P)·a + f).
func lensProjective(p, a r3.Vec, f float64) *mat.Dense {
	ap := r3.Dot(a, p)
	pv := [3]float64{p.X, p.Y, p.Z}
	av := [3]float64{a.X, a.Y, a.Z}
	m := mat.NewDense(4, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := pv[r] * av[c] / f
			if r == c {
				v++
			}
			m.Set(r, c, v)
		}
		m.Set(r, 3, -pv[r]*ap/f)
		m.Set(3, r, av[r]/f)
	}
	m.Set(3, 3, 1-ap/f)
	return m
}

// applyHomogeneous multiplies (p, 1) by m and divides by the last component.
// Points mapped to the plane at infinity come back as infinite coordinates.
func applyHomogeneous(m mat.Matrix, p r3.Vec) r3.Vec {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1}))
	w := out.AtVec(3)
	if w == 0 {
		return r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	}
	return r3.Vec{X: out.AtVec(0) / w, Y: out.AtVec(1) / w, Z: out.AtVec(2) / w}
}

// toMatrix4 converts to the column-major float32 layout renderers consume.
func toMatrix4(m mat.Matrix) math32.Matrix4 {
	var out math32.Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = float32(m.At(r, c))
		}
	}
	return out
}

func toVector3(v r3.Vec) math32.Vector3 {
	return math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z))
}
