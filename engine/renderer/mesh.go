package renderer

import "github.com/spaghettifunk/anima-cube/engine/math"

const (
	// VertexStride is the number of floats per vertex.
	VertexStride = 5

	attributePosition = 0
	attributeTexcoord = 1
)

/**
 * @brief Vertex data uploaded once and drawn as independent triangles.
 */
type Mesh struct {
	device      Device
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// NewMesh uploads vertices and records the position/texcoord layout.
func NewMesh(device Device, vertices []math.VertexPosUV) *Mesh {
	m := &Mesh{
		device:      device,
		vertexCount: int32(len(vertices)),
	}
	m.vao = device.CreateVertexArray()
	device.BindVertexArray(m.vao)

	m.vbo = device.CreateVertexBuffer(FlattenVertices(vertices))
	device.VertexAttribute(attributePosition, 3, VertexStride, 0)
	device.VertexAttribute(attributeTexcoord, 2, VertexStride, 3)

	device.BindVertexArray(0)
	return m
}

func NewCubeMesh(device Device) *Mesh {
	return NewMesh(device, CubeVertices[:])
}

func (m *Mesh) VertexCount() int32 {
	return m.vertexCount
}

func (m *Mesh) Bind() {
	m.device.BindVertexArray(m.vao)
}

func (m *Mesh) Unbind() {
	m.device.BindVertexArray(0)
}

func (m *Mesh) Draw() {
	m.device.DrawTriangles(0, m.vertexCount)
}

// Destroy releases the vertex buffer, then the vertex layout object.
func (m *Mesh) Destroy() {
	if m.vbo != 0 {
		m.device.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		m.device.DeleteVertexArray(m.vao)
		m.vao = 0
	}
}
