package math3d

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Covariance returns the 3x3 sample covariance matrix of points.
// Fewer than two points give the zero matrix.
func Covariance(points []Vec3) Mat3 {
	if len(points) < 2 {
		return Mat3{}
	}
	data := make([]float64, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p.X, p.Y, p.Z)
	}
	x := mat.NewDense(len(points), 3, data)

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)

	var m Mat3
	for col := range 3 {
		for row := range 3 {
			m[row+col*3] = cov.At(row, col)
		}
	}
	return m
}

// EigenSym decomposes the symmetric matrix m. The returned basis holds the
// unit eigenvectors as columns, ordered by descending eigenvalue, and is
// right-handed. If the factorization fails, the identity basis and zero
// values are returned with ok false.
func EigenSym(m Mat3) (basis Mat3, values Vec3, ok bool) {
	sym := mat.NewSymDense(3, []float64{
		m.Get(0, 0), m.Get(0, 1), m.Get(0, 2),
		m.Get(1, 0), m.Get(1, 1), m.Get(1, 2),
		m.Get(2, 0), m.Get(2, 1), m.Get(2, 2),
	})

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return Identity3(), Vec3{}, false
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	order := []int{0, 1, 2}
	sort.SliceStable(order, func(i, j int) bool {
		return vals[order[i]] > vals[order[j]]
	})

	for i, k := range order {
		basis.SetCol(i, Vec3{vecs.At(0, k), vecs.At(1, k), vecs.At(2, k)})
		values.Set(i, vals[k])
	}
	if basis.Determinant() < 0 {
		basis.SetCol(2, basis.Col(2).Negate())
	}
	return basis, values, true
}

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0 in ascending
// order. n is the number of distinct real roots (0, 1 or 2). A zero leading
// coefficient degrades to the linear equation.
func SolveQuadratic(a, b, c float64) (x0, x1 float64, n int) {
	if a == 0 {
		if b == 0 {
			return 0, 0, 0
		}
		x0 = -c / b
		return x0, x0, 1
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return 0, 0, 0
	case disc == 0:
		x0 = -b / (2 * a)
		return x0, x0, 1
	}
	// numerically stable form
	sq := math.Sqrt(disc)
	var q float64
	if b < 0 {
		q = -0.5 * (b - sq)
	} else {
		q = -0.5 * (b + sq)
	}
	x0, x1 = q/a, c/q
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return x0, x1, 2
}
