package vstage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrAttributeMismatch is returned when a generated shader references a
// vertex attribute its variant does not declare, or leaves a declared
// attribute unreferenced. Either way the build must fail: the declared
// input interface and the consuming expressions have drifted apart.
var ErrAttributeMismatch = errors.New("vstage: attribute mismatch")

// VertexEntryPoint is the entry point name of the generated vertex stage.
const VertexEntryPoint = "vs_main"

// FragmentEntryPoint is the entry point name of the fragment stub.
const FragmentEntryPoint = "fs_main"

// ShaderSource generates the WGSL vertex stage for a variant. The module
// declares the Transform uniform block at @group(0) @binding(0), the
// VertexInput/VertexOutput structs matching Variant.Attributes, and the
// vs_main entry point implementing the transform and the clip-space
// viewport packing.
//
// The eight variants produce eight distinct modules: a disabled attribute
// is absent from the interface, not branched over at runtime.
func ShaderSource(v Variant) string {
	var b strings.Builder

	b.WriteString(`struct Transform {
    model: mat4x4<f32>,
    view: mat4x4<f32>,
    proj: mat4x4<f32>,
    xoffset: f32,
}

@group(0) @binding(0) var<uniform> transform: Transform;

`)

	b.WriteString("struct VertexInput {\n")
	for _, a := range v.Attributes() {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", a.Location, a.Name, wgslVecType(a.Components))
	}
	b.WriteString("}\n\n")

	b.WriteString("struct VertexOutput {\n")
	b.WriteString("    @builtin(position) clip_position: vec4<f32>,\n")
	loc := 0
	writeOut := func(name string, components int) {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", loc, name, wgslVecType(components))
		loc++
	}
	writeOut("world_position", 3)
	if v.Has(VariantNorm) {
		writeOut("world_normal", 3)
	}
	if v.Has(VariantTex) {
		writeOut("texcoord", 2)
	}
	if v.Has(VariantColor) {
		writeOut("color", 3)
	}
	b.WriteString("}\n\n")

	b.WriteString(`@vertex
fn vs_main(vertex: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let world_pos = transform.model * vec4<f32>(vertex.position, 1.0);
    out.world_position = world_pos.xyz;
`)
	if v.Has(VariantNorm) {
		// w=0 direction transform, uniform scale only.
		b.WriteString("    out.world_normal = (transform.model * vec4<f32>(vertex.normal, 0.0)).xyz;\n")
	}
	if v.Has(VariantTex) {
		b.WriteString("    out.texcoord = vec2<f32>(vertex.texcoord.x, 1.0 - vertex.texcoord.y);\n")
	}
	if v.Has(VariantColor) {
		b.WriteString("    out.color = vertex.color;\n")
	}
	b.WriteString(`    var clip = transform.proj * (transform.view * world_pos);
    clip.x = clip.x / (2.0 * clip.w);
    clip.x = clip.x + transform.xoffset;
    clip.x = clip.x * clip.w;
    out.clip_position = clip;
    return out;
}
`)
	return b.String()
}

// FragmentStub generates a minimal flat fragment entry point that can be
// appended to ShaderSource output, for pipelines whose host supplies no
// fragment stage of its own. It returns the interpolated color under
// VariantColor and opaque white otherwise; it carries no shading
// semantics.
func FragmentStub(v Variant) string {
	if v.Has(VariantColor) {
		return `
@fragment
fn fs_main(frag: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(frag.color, 1.0);
}
`
	}
	return `
@fragment
fn fs_main(frag: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`
}

// vertexRefPattern matches attribute reads off the vertex input parameter.
var vertexRefPattern = regexp.MustCompile(`\bvertex\.([A-Za-z_][A-Za-z0-9_]*)`)

// VerifyShaderSource checks that a vertex stage source and a variant agree
// on the input interface: every attribute the source reads must be
// declared by the variant, and every attribute the variant declares must
// be read. A mismatch wraps ErrAttributeMismatch.
//
// ShaderSource output always passes. The check exists for hosts that
// post-process or hand-maintain shader text, where a declared input and
// the expression consuming it can silently drift apart.
func VerifyShaderSource(v Variant, source string) error {
	declared := make(map[string]bool)
	for _, a := range v.Attributes() {
		declared[a.Name] = false
	}

	for _, m := range vertexRefPattern.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%w: shader reads undeclared attribute %q (variant %s)",
				ErrAttributeMismatch, name, v)
		}
		declared[name] = true
	}

	for name, referenced := range declared {
		if !referenced {
			return fmt.Errorf("%w: declared attribute %q is never read (variant %s)",
				ErrAttributeMismatch, name, v)
		}
	}
	return nil
}

func wgslVecType(components int) string {
	if components == 1 {
		return "f32"
	}
	return fmt.Sprintf("vec%d<f32>", components)
}
