package vstage

import "testing"

func TestPackVertices_Layouts(t *testing.T) {
	verts := []VertexInput{
		{
			Position: V3(1, 2, 3),
			Normal:   V3(0, 1, 0),
			Texcoord: V2(0.25, 0.75),
			Color:    V3(0.5, 0.6, 0.7),
		},
		{
			Position: V3(-1, -2, -3),
			Normal:   V3(1, 0, 0),
			Texcoord: V2(1, 0),
			Color:    V3(0, 0, 1),
		},
	}

	for _, v := range Variants() {
		buf := PackVertices(v, verts)
		stride := v.Stride()
		if len(buf) != len(verts)*stride {
			t.Fatalf("variant %s: packed %d bytes, want %d", v, len(buf), len(verts)*stride)
		}

		for i, vert := range verts {
			base := i * stride
			for _, a := range v.Attributes() {
				off := base + a.Offset
				var want []float32
				switch a.Name {
				case "position":
					want = []float32{vert.Position.X, vert.Position.Y, vert.Position.Z}
				case "normal":
					want = []float32{vert.Normal.X, vert.Normal.Y, vert.Normal.Z}
				case "texcoord":
					want = []float32{vert.Texcoord.X, vert.Texcoord.Y}
				case "color":
					want = []float32{vert.Color.X, vert.Color.Y, vert.Color.Z}
				}
				for c, w := range want {
					if got := f32At(t, buf, off+c*4); got != w {
						t.Errorf("variant %s vertex %d %s[%d] = %v, want %v",
							v, i, a.Name, c, got, w)
					}
				}
			}
		}
	}
}

func TestPackVertices_OmitsDisabledAttributes(t *testing.T) {
	// A texcoord-only build must not carry normal or color data; the
	// stride alone proves it, and adjacent vertices must stay aligned.
	verts := []VertexInput{
		{Position: V3(1, 0, 0), Texcoord: V2(0.5, 0.5), Normal: V3(9, 9, 9), Color: V3(9, 9, 9)},
		{Position: V3(2, 0, 0), Texcoord: V2(0.1, 0.2)},
	}

	buf := PackVertices(VariantTex, verts)
	if len(buf) != 2*20 {
		t.Fatalf("packed %d bytes, want 40", len(buf))
	}
	// Second vertex position starts right after the first texcoord.
	if got := f32At(t, buf, 20); got != 2 {
		t.Errorf("second vertex position.x = %v, want 2", got)
	}
}

func TestPackVertices_Empty(t *testing.T) {
	if buf := PackVertices(VariantNorm, nil); len(buf) != 0 {
		t.Errorf("packed %d bytes for no vertices", len(buf))
	}
}
