package vstage

import (
	"encoding/binary"
	"math"
	"testing"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestTransformBlock_PackLayout(t *testing.T) {
	// The host writes this block by offset: model at 0, view at 64,
	// proj at 128, xoffset at 192, padded to 208 bytes.
	block := TransformBlock{
		Model:   Translate(1, 2, 3),
		View:    UniformScale(4),
		Proj:    Identity(),
		XOffset: 0.25,
	}

	buf := block.Pack()
	if len(buf) != TransformBlockSize {
		t.Fatalf("Pack() returned %d bytes, want %d", len(buf), TransformBlockSize)
	}

	// Model: column-major, translation lives in elements 12..14.
	if got := f32At(t, buf, 12*4); got != 1 {
		t.Errorf("model[12] = %v, want 1", got)
	}
	if got := f32At(t, buf, 14*4); got != 3 {
		t.Errorf("model[14] = %v, want 3", got)
	}

	// View at offset 64: diagonal 4.
	if got := f32At(t, buf, 64); got != 4 {
		t.Errorf("view[0] = %v, want 4", got)
	}
	if got := f32At(t, buf, 64+5*4); got != 4 {
		t.Errorf("view[5] = %v, want 4", got)
	}

	// Proj at offset 128: identity diagonal.
	for _, i := range []int{0, 5, 10, 15} {
		if got := f32At(t, buf, 128+i*4); got != 1 {
			t.Errorf("proj[%d] = %v, want 1", i, got)
		}
	}

	// xoffset at offset 192, tail padding zero.
	if got := f32At(t, buf, 192); got != 0.25 {
		t.Errorf("xoffset = %v, want 0.25", got)
	}
	for i := 196; i < TransformBlockSize; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestTransformBlock_PackIntoShortBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PackInto on a short buffer did not panic")
		}
	}()
	var block TransformBlock
	block.PackInto(make([]byte, TransformBlockSize-1))
}

func TestEye_Block(t *testing.T) {
	eye := Eye{View: UniformScale(2), Proj: Translate(0, 0, -1), XOffset: XOffsetRight}
	model := RotateY(0.5)

	block := eye.Block(model)
	if !block.Model.Approx(model, 1e-6) {
		t.Error("Block did not carry the model matrix")
	}
	if !block.View.Approx(eye.View, 1e-6) || !block.Proj.Approx(eye.Proj, 1e-6) {
		t.Error("Block did not carry the eye matrices")
	}
	if block.XOffset != XOffsetRight {
		t.Errorf("XOffset = %v, want %v", block.XOffset, XOffsetRight)
	}
}

func TestStereoPair(t *testing.T) {
	leftView := Translate(0.03, 0, 0)
	rightView := Translate(-0.03, 0, 0)
	proj := Perspective(1.0, 1.0, 0.1, 100)

	left, right := StereoPair(leftView, rightView, proj)

	if left.XOffset != XOffsetLeft || right.XOffset != XOffsetRight {
		t.Errorf("offsets = (%v, %v), want (%v, %v)",
			left.XOffset, right.XOffset, XOffsetLeft, XOffsetRight)
	}
	if !left.View.Approx(leftView, 1e-6) || !right.View.Approx(rightView, 1e-6) {
		t.Error("eye views not carried through")
	}
	if !left.Proj.Approx(proj, 1e-6) || !right.Proj.Approx(proj, 1e-6) {
		t.Error("shared projection not carried through")
	}
}

func TestStereoPair_PacksIntoOppositeHalves(t *testing.T) {
	// A centered vertex must land in the left half under the left eye
	// and the right half under the right eye.
	left, right := StereoPair(Identity(), Identity(), Identity())
	stage := NewStage(VariantNone)

	lBlock := left.Block(Identity())
	rBlock := right.Block(Identity())

	in := VertexInput{Position: V3(0, 0, 0)}
	lx := stage.Invoke(&lBlock, in).ClipPosition.NDC().X
	rx := stage.Invoke(&rBlock, in).ClipPosition.NDC().X

	if lx >= 0 {
		t.Errorf("left eye NDC x = %v, want negative", lx)
	}
	if rx <= 0 {
		t.Errorf("right eye NDC x = %v, want positive", rx)
	}
}
