package vstage

import (
	"encoding/binary"
	"math"
)

// TransformBlock uniform layout. The field order is load-bearing: hosts
// write the block by offset, not by name, and the generated WGSL declares
// the same struct. Matrices are column-major f32, matching Mat4.
//
//	offset   0: model   mat4x4<f32>  (64 bytes)
//	offset  64: view    mat4x4<f32>  (64 bytes)
//	offset 128: proj    mat4x4<f32>  (64 bytes)
//	offset 192: xoffset f32          (4 bytes)
//	offset 196: padding              (12 bytes, struct alignment)
const (
	blockModelOffset   = 0
	blockViewOffset    = 64
	blockProjOffset    = 128
	blockXOffsetOffset = 192

	// TransformBlockSize is the bound byte size of the packed block,
	// padded to the 16-byte struct alignment WGSL requires.
	TransformBlockSize = 208
)

// Standard xoffset values for packing two sub-views into the left and
// right halves of one render target.
const (
	XOffsetLeft  float32 = -0.5
	XOffsetRight float32 = 0.5
)

// TransformBlock is the shared, read-only per-draw transform state: the
// three stacked transform matrices plus the horizontal NDC shift for the
// current sub-view.
//
// The host updates the block between draw calls, never during one. Every
// invocation of a draw reads the same block; no invocation may mutate it.
type TransformBlock struct {
	// Model transforms object space to world space.
	Model Mat4

	// View transforms world space to camera space.
	View Mat4

	// Proj transforms camera space to clip space (perspective).
	Proj Mat4

	// XOffset shifts the packed sub-view horizontally in NDC space.
	// Zero renders centered at half width; XOffsetLeft and XOffsetRight
	// select the left and right halves.
	XOffset float32
}

// Pack serializes the block into its uniform layout, ready for upload to a
// uniform buffer. The result is always TransformBlockSize bytes.
func (b *TransformBlock) Pack() []byte {
	buf := make([]byte, TransformBlockSize)
	b.PackInto(buf)
	return buf
}

// PackInto serializes the block into buf. buf must be at least
// TransformBlockSize bytes; PackInto panics on a shorter buffer.
func (b *TransformBlock) PackInto(buf []byte) {
	_ = buf[TransformBlockSize-1]
	packMat4(buf[blockModelOffset:], b.Model)
	packMat4(buf[blockViewOffset:], b.View)
	packMat4(buf[blockProjOffset:], b.Proj)
	binary.LittleEndian.PutUint32(buf[blockXOffsetOffset:], math.Float32bits(b.XOffset))
}

func packMat4(buf []byte, m Mat4) {
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// Eye holds the per-sub-view half of a draw's transform state: the view
// and projection of one eye (or any other sub-view) plus its xoffset. A
// stereo host keeps two of these and builds one TransformBlock per eye
// around a shared model matrix.
type Eye struct {
	View    Mat4
	Proj    Mat4
	XOffset float32
}

// Block combines the eye with a model matrix into a complete
// TransformBlock for one packed draw.
func (e Eye) Block(model Mat4) TransformBlock {
	return TransformBlock{
		Model:   model,
		View:    e.View,
		Proj:    e.Proj,
		XOffset: e.XOffset,
	}
}

// StereoPair builds the left and right eyes of a stereo draw sharing one
// projection. The two resulting blocks pack their geometry into the left
// and right halves of the target with no viewport state change between
// the draws.
func StereoPair(leftView, rightView, proj Mat4) (left, right Eye) {
	left = Eye{View: leftView, Proj: proj, XOffset: XOffsetLeft}
	right = Eye{View: rightView, Proj: proj, XOffset: XOffsetRight}
	return left, right
}
