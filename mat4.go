package vstage

import "math"

// Mat4 is a 4x4 float32 transformation matrix in column-major order:
// element (row, col) lives at index col*4+row. This matches the WGSL
// mat4x4<f32> memory layout, so a Mat4 packs into a uniform block without
// reordering.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// UniformScale creates a scaling matrix with the same factor on all axes.
func UniformScale(s float32) Mat4 {
	return Scale(s, s, s)
}

// RotateY creates a rotation matrix about the Y axis (angle in radians).
func RotateY(angle float32) Mat4 {
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	m := Identity()
	m[0] = cos
	m[2] = -sin
	m[8] = sin
	m[10] = cos
	return m
}

// Perspective creates a right-handed perspective projection matrix mapping
// depth to the [0, 1] clip range used by WebGPU. fovy is the vertical field
// of view in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = near * far / (near - far)
	return m
}

// LookAt creates a right-handed view matrix with the camera at eye,
// looking at center, with the given up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul multiplies two matrices (m * other). Applying the result to a vector
// is equivalent to applying other first, then m.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 applies the transformation to a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a position (w=1) and returns the xyz of the result.
// The homogeneous component is discarded, not divided through.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(v.Point()).XYZ()
}

// MulDirection transforms a direction (w=0), ignoring the translation
// column, and returns the xyz of the result.
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return m.MulVec4(v.Direction()).XYZ()
}

// Approx returns true if two matrices are approximately equal within epsilon.
func (m Mat4) Approx(other Mat4, epsilon float32) bool {
	for i := range m {
		if abs32(m[i]-other[i]) >= epsilon {
			return false
		}
	}
	return true
}
