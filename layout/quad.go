package layout

import "github.com/go-gl/mathgl/mgl32"

// Per-glyph geometry sizes.
const (
	// VerticesPerGlyph is the vertex count of one glyph: two triangles,
	// no index buffer.
	VerticesPerGlyph = 6

	// FloatsPerGlyph is the float count one glyph adds to each of the
	// position and texture coordinate arrays.
	FloatsPerGlyph = VerticesPerGlyph * 2
)

// Vertex pairs a clip-space position with the atlas texture coordinate
// sampled at that position.
type Vertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

// Quad is the pre-triangulated geometry of one glyph.
//
// Vertices holds triangle {TL, BL, BR} followed by {BR, TR, TL}, which is
// counter-clockwise in clip space.
type Quad struct {
	Rune     rune
	Vertices [VerticesPerGlyph]Vertex
}

// emitQuad builds the quad whose top-left corner is (x, y), of size
// (w, h) in clip space, sampling the atlas cell whose lower-left texture
// corner is (u, v) and whose size is (du, dv).
func emitQuad(r rune, x, y, w, h, u, v, du, dv float32) Quad {
	tl := Vertex{Pos: mgl32.Vec2{x, y}, UV: mgl32.Vec2{u, v + dv}}
	bl := Vertex{Pos: mgl32.Vec2{x, y - h}, UV: mgl32.Vec2{u, v}}
	br := Vertex{Pos: mgl32.Vec2{x + w, y - h}, UV: mgl32.Vec2{u + du, v}}
	tr := Vertex{Pos: mgl32.Vec2{x + w, y}, UV: mgl32.Vec2{u + du, v + dv}}

	return Quad{
		Rune:     r,
		Vertices: [VerticesPerGlyph]Vertex{tl, bl, br, br, tr, tl},
	}
}

// appendTo appends the quad's positions and texture coordinates to the
// two flat arrays in vertex order.
func (q *Quad) appendTo(positions, texcoords []float32) ([]float32, []float32) {
	for _, v := range q.Vertices {
		positions = append(positions, v.Pos[0], v.Pos[1])
		texcoords = append(texcoords, v.UV[0], v.UV[1])
	}
	return positions, texcoords
}

// Left returns the x coordinate of the quad's left edge.
func (q *Quad) Left() float32 {
	return q.Vertices[0].Pos[0]
}

// Top returns the y coordinate of the quad's top edge.
func (q *Quad) Top() float32 {
	return q.Vertices[0].Pos[1]
}
