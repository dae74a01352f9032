package vstage

import (
	"math"
	"testing"
)

func TestMat4_Identity(t *testing.T) {
	m := Identity()
	v := V4(1, 2, 3, 4)
	if got := m.MulVec4(v); got != v {
		t.Errorf("Identity().MulVec4(%v) = %v", v, got)
	}
	if got := m.Mul(m); !got.Approx(m, 1e-6) {
		t.Errorf("Identity squared = %v", got)
	}
}

func TestMat4_TranslatePointVsDirection(t *testing.T) {
	m := Translate(10, 20, 30)
	p := V3(1, 1, 1)

	if got := m.MulPoint(p); !got.Approx(V3(11, 21, 31), 1e-6) {
		t.Errorf("MulPoint = %v, want (11, 21, 31)", got)
	}
	// Directions (w=0) must ignore the translation column.
	if got := m.MulDirection(p); !got.Approx(p, 1e-6) {
		t.Errorf("MulDirection = %v, want %v", got, p)
	}
}

func TestMat4_MulOrder(t *testing.T) {
	// Translate(1,0,0) * Scale(2): scale applies first.
	m := Translate(1, 0, 0).Mul(UniformScale(2))
	if got := m.MulPoint(V3(1, 0, 0)); !got.Approx(V3(3, 0, 0), 1e-6) {
		t.Errorf("translate*scale point = %v, want (3, 0, 0)", got)
	}

	// Scale(2) * Translate(1,0,0): translation applies first, then doubles.
	m = UniformScale(2).Mul(Translate(1, 0, 0))
	if got := m.MulPoint(V3(1, 0, 0)); !got.Approx(V3(4, 0, 0), 1e-6) {
		t.Errorf("scale*translate point = %v, want (4, 0, 0)", got)
	}
}

func TestMat4_At(t *testing.T) {
	m := Translate(5, 6, 7)
	// Translation occupies the last column.
	if m.At(0, 3) != 5 || m.At(1, 3) != 6 || m.At(2, 3) != 7 {
		t.Errorf("translation column = (%v, %v, %v), want (5, 6, 7)",
			m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
	if m.At(3, 3) != 1 {
		t.Errorf("At(3,3) = %v, want 1", m.At(3, 3))
	}
}

func TestMat4_RotateY(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	// +X rotates to -Z under a quarter turn about Y.
	if got := m.MulDirection(V3(1, 0, 0)); !got.Approx(V3(0, 0, -1), 1e-6) {
		t.Errorf("quarter turn of +X = %v, want (0, 0, -1)", got)
	}
}

func TestMat4_Perspective(t *testing.T) {
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)

	// A point on the near plane maps to NDC z = 0, on the far plane to 1.
	near := proj.MulVec4(V4(0, 0, -1, 1))
	if abs32(near.Z/near.W) > 1e-5 {
		t.Errorf("near plane NDC z = %v, want 0", near.Z/near.W)
	}
	far := proj.MulVec4(V4(0, 0, -100, 1))
	if abs32(far.Z/far.W-1) > 1e-4 {
		t.Errorf("far plane NDC z = %v, want 1", far.Z/far.W)
	}

	// w carries the positive view-space depth.
	if near.W <= 0 {
		t.Errorf("near plane w = %v, want positive", near.W)
	}
}

func TestMat4_LookAt(t *testing.T) {
	view := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))

	// The look-at target moves onto the -Z axis in camera space.
	if got := view.MulPoint(V3(0, 0, 0)); !got.Approx(V3(0, 0, -5), 1e-5) {
		t.Errorf("target in camera space = %v, want (0, 0, -5)", got)
	}
	// The eye maps to the origin.
	if got := view.MulPoint(V3(0, 0, 5)); !got.Approx(V3(0, 0, 0), 1e-5) {
		t.Errorf("eye in camera space = %v, want origin", got)
	}
}
