package vstage

import (
	"fmt"
	"strings"
)

// Variant selects which optional attribute channels a stage build declares.
// It is a build-time configuration, not a runtime switch: each of the eight
// flag combinations fixes a distinct vertex layout and shader interface,
// and a Stage or pipeline is constructed for exactly one Variant.
type Variant uint8

const (
	// VariantNorm declares the normal input/output pair. The stage emits
	// the world-space normal alongside the position.
	VariantNorm Variant = 1 << iota

	// VariantTex declares the texcoord input/output pair. The stage flips
	// the vertical coordinate (t.y becomes 1-t.y) on the way through.
	VariantTex

	// VariantColor declares the color input/output pair as an unmodified
	// passthrough.
	VariantColor
)

// VariantNone is the minimal build: position in, clip position and world
// position out, nothing else.
const VariantNone Variant = 0

// variantMask covers all defined flags.
const variantMask = VariantNorm | VariantTex | VariantColor

// Variants returns all eight legal variants in ascending bitmask order.
func Variants() []Variant {
	vs := make([]Variant, 0, 8)
	for v := VariantNone; v <= variantMask; v++ {
		vs = append(vs, v)
	}
	return vs
}

// Has reports whether all flags in f are enabled in v.
func (v Variant) Has(f Variant) bool {
	return v&f == f
}

// Valid reports whether v contains only defined flags.
func (v Variant) Valid() bool {
	return v&^variantMask == 0
}

// String returns a readable form such as "norm|tex". The empty variant
// is "position-only".
func (v Variant) String() string {
	if v == VariantNone {
		return "position-only"
	}
	var parts []string
	if v.Has(VariantNorm) {
		parts = append(parts, "norm")
	}
	if v.Has(VariantTex) {
		parts = append(parts, "tex")
	}
	if v.Has(VariantColor) {
		parts = append(parts, "color")
	}
	if v&^variantMask != 0 {
		parts = append(parts, fmt.Sprintf("invalid(0x%x)", uint8(v&^variantMask)))
	}
	return strings.Join(parts, "|")
}

// Attribute describes one input attribute slot of a variant's vertex
// layout: its shader-facing name, @location index, byte offset within the
// interleaved vertex, and component count (float32 components).
type Attribute struct {
	Name       string
	Location   int
	Offset     int
	Components int
}

// Size returns the attribute's byte size.
func (a Attribute) Size() int {
	return a.Components * 4
}

// Attributes returns the input attribute slots declared by the variant, in
// declaration order: position always at location 0, then the enabled
// optional attributes in norm, tex, color order at successive locations
// and offsets. The layout is interleaved float32 data.
func (v Variant) Attributes() []Attribute {
	attrs := []Attribute{{Name: "position", Location: 0, Offset: 0, Components: 3}}
	loc, off := 1, 12
	if v.Has(VariantNorm) {
		attrs = append(attrs, Attribute{Name: "normal", Location: loc, Offset: off, Components: 3})
		loc++
		off += 12
	}
	if v.Has(VariantTex) {
		attrs = append(attrs, Attribute{Name: "texcoord", Location: loc, Offset: off, Components: 2})
		loc++
		off += 8
	}
	if v.Has(VariantColor) {
		attrs = append(attrs, Attribute{Name: "color", Location: loc, Offset: off, Components: 3})
	}
	return attrs
}

// Stride returns the byte stride of one interleaved vertex for the variant.
func (v Variant) Stride() int {
	stride := 12
	if v.Has(VariantNorm) {
		stride += 12
	}
	if v.Has(VariantTex) {
		stride += 8
	}
	if v.Has(VariantColor) {
		stride += 12
	}
	return stride
}
