package lenscomplex

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func isFinite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func finiteVec(v r3.Vec) bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
