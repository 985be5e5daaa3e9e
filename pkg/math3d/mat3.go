package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
//
// When used as a rotation basis, column i is the local axis i expressed in
// world space.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(x, y, z Vec3) Mat3 {
	return Mat3{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	}
}

// Col returns column i.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// SetCol sets column i.
func (m *Mat3) SetCol(i int, v Vec3) {
	m[i*3] = v.X
	m[i*3+1] = v.Y
	m[i*3+2] = v.Z
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row+col*3]
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// MulTVec3 returns transpose(m) * v. For a rotation basis this takes a world
// direction into local coordinates.
func (m Mat3) MulTVec3(v Vec3) Vec3 {
	return Vec3{
		m.Col(0).Dot(v),
		m.Col(1).Dot(v),
		m.Col(2).Dot(v),
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// Orthonormalize returns a right-handed orthonormal basis derived from the
// columns of m by Gram-Schmidt. Degenerate columns are replaced by world axes.
func (m Mat3) Orthonormalize() Mat3 {
	x := m.Col(0).NormalizeOr(UnitX())

	y := m.Col(1)
	y = y.Sub(x.Scale(x.Dot(y)))
	if y.LenSq() < 1e-24 {
		y = leastAligned(x)
		y = y.Sub(x.Scale(x.Dot(y)))
	}
	y = y.Normalize()

	return Mat3FromCols(x, y, x.Cross(y))
}

// IsOrthonormal reports whether the columns are unit length and mutually
// orthogonal within tol.
func (m Mat3) IsOrthonormal(tol float64) bool {
	x, y, z := m.Col(0), m.Col(1), m.Col(2)
	return math.Abs(x.LenSq()-1) <= tol &&
		math.Abs(y.LenSq()-1) <= tol &&
		math.Abs(z.LenSq()-1) <= tol &&
		math.Abs(x.Dot(y)) <= tol &&
		math.Abs(x.Dot(z)) <= tol &&
		math.Abs(y.Dot(z)) <= tol
}

// leastAligned returns the world axis with the smallest absolute dot product
// against v.
func leastAligned(v Vec3) Vec3 {
	a := v.Abs()
	switch {
	case a.X <= a.Y && a.X <= a.Z:
		return UnitX()
	case a.Y <= a.Z:
		return UnitY()
	default:
		return UnitZ()
	}
}

// LeastAlignedAxis returns the world axis least aligned with v.
func LeastAlignedAxis(v Vec3) Vec3 {
	return leastAligned(v)
}
