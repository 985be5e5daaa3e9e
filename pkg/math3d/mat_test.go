package math3d

import (
	"math"
	"testing"
)

func TestIsScaleTranslate(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want bool
	}{
		{"identity", Identity(), true},
		{"translate", Translate(V3(1, 2, 3)), true},
		{"scale then translate", Translate(V3(1, 2, 3)).Mul(Scale(V3(2, -1, 0.5))), true},
		{"rotation", RotateY(0.3), false},
		{"perspective", Perspective(math.Pi/3, 1, 1, 100), false},
		{"rotate by zero", RotateZ(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsScaleTranslate(); got != tt.want {
				t.Errorf("IsScaleTranslate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	basis := RotateZ(math.Pi / 2).Linear()
	m := Compose(basis, V3(2, 3, 4), V3(10, 0, 0))

	got := m.MulVec3(V3(1, 0, 0))
	want := V3(10, 2, 0)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("MulVec3(+X) = %v, want %v", got, want)
	}
	if !m.Translation().ApproxEqual(V3(10, 0, 0), 0) {
		t.Errorf("Translation() = %v", m.Translation())
	}
}

func TestMat3(t *testing.T) {
	r := RotateX(0.7).Linear()
	if !r.IsOrthonormal(1e-12) {
		t.Fatal("rotation should be orthonormal")
	}

	v := V3(1, -2, 3)
	back := r.MulTVec3(r.MulVec3(v))
	if !back.ApproxEqual(v, 1e-12) {
		t.Errorf("MulTVec3(MulVec3(v)) = %v, want %v", back, v)
	}

	id := r.Mul(r.Transpose())
	if !id.IsOrthonormal(1e-12) || math.Abs(id.Get(0, 0)-1) > 1e-12 {
		t.Errorf("r * r^T = %v, want identity", id)
	}
}

func TestOrthonormalize(t *testing.T) {
	m := Mat3FromCols(V3(2, 0, 0), V3(1, 1, 0), V3(0, 0, 0))
	o := m.Orthonormalize()
	if !o.IsOrthonormal(1e-12) {
		t.Fatalf("Orthonormalize() = %v", o)
	}
	if math.Abs(o.Determinant()-1) > 1e-12 {
		t.Errorf("det = %v, want 1", o.Determinant())
	}
	if !o.Col(1).ApproxEqual(UnitY(), 1e-12) {
		t.Errorf("second column = %v, want +Y", o.Col(1))
	}

	// parallel first two columns
	p := Mat3FromCols(V3(1, 0, 0), V3(3, 0, 0), V3(0, 0, 1)).Orthonormalize()
	if !p.IsOrthonormal(1e-12) {
		t.Errorf("degenerate Orthonormalize() = %v", p)
	}
}
