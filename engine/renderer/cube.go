package renderer

import "github.com/spaghettifunk/anima-cube/engine/math"

// CubeVertexCount is 6 faces of 2 triangles, no shared vertices.
const CubeVertexCount = 36

func v(x, y, z, u, w float32) math.VertexPosUV {
	return math.VertexPosUV{Position: math.NewVec3(x, y, z), U: u, V: w}
}

// CubeVertices is a unit cube centred on the origin.
var CubeVertices = [CubeVertexCount]math.VertexPosUV{
	// back
	v(-0.5, -0.5, -0.5, 0, 0), v(0.5, -0.5, -0.5, 1, 0), v(0.5, 0.5, -0.5, 1, 1),
	v(0.5, 0.5, -0.5, 1, 1), v(-0.5, 0.5, -0.5, 0, 1), v(-0.5, -0.5, -0.5, 0, 0),
	// front
	v(-0.5, -0.5, 0.5, 0, 0), v(0.5, -0.5, 0.5, 1, 0), v(0.5, 0.5, 0.5, 1, 1),
	v(0.5, 0.5, 0.5, 1, 1), v(-0.5, 0.5, 0.5, 0, 1), v(-0.5, -0.5, 0.5, 0, 0),
	// left
	v(-0.5, 0.5, 0.5, 1, 0), v(-0.5, 0.5, -0.5, 1, 1), v(-0.5, -0.5, -0.5, 0, 1),
	v(-0.5, -0.5, -0.5, 0, 1), v(-0.5, -0.5, 0.5, 0, 0), v(-0.5, 0.5, 0.5, 1, 0),
	// right
	v(0.5, 0.5, 0.5, 1, 0), v(0.5, 0.5, -0.5, 1, 1), v(0.5, -0.5, -0.5, 0, 1),
	v(0.5, -0.5, -0.5, 0, 1), v(0.5, -0.5, 0.5, 0, 0), v(0.5, 0.5, 0.5, 1, 0),
	// bottom
	v(-0.5, -0.5, -0.5, 0, 1), v(0.5, -0.5, -0.5, 1, 1), v(0.5, -0.5, 0.5, 1, 0),
	v(0.5, -0.5, 0.5, 1, 0), v(-0.5, -0.5, 0.5, 0, 0), v(-0.5, -0.5, -0.5, 0, 1),
	// top
	v(-0.5, 0.5, -0.5, 0, 1), v(0.5, 0.5, -0.5, 1, 1), v(0.5, 0.5, 0.5, 1, 0),
	v(0.5, 0.5, 0.5, 1, 0), v(-0.5, 0.5, 0.5, 0, 0), v(-0.5, 0.5, -0.5, 0, 1),
}

// FlattenVertices packs vertices as x, y, z, u, v per vertex.
func FlattenVertices(vertices []math.VertexPosUV) []float32 {
	out := make([]float32, 0, len(vertices)*VertexStride)
	for _, vx := range vertices {
		out = append(out, vx.Position.X, vx.Position.Y, vx.Position.Z, vx.U, vx.V)
	}
	return out
}
