package renderer

import "github.com/spaghettifunk/anima-cube/engine/renderer/metadata"

// Device is the graphics backend. Every call must come from the thread that
// owns the current context. Handles are opaque backend object names; 0 is
// never a valid handle.
type Device interface {
	Info() metadata.DeviceInfo
	Enable(capability metadata.Capability)
	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)

	CreateShader(stage metadata.ShaderStage) uint32
	// CompileShader returns false and the driver info log on failure.
	CompileShader(shader uint32, source string) (bool, string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (bool, string)
	ValidateProgram(program uint32) (bool, string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	// UniformLocation returns -1 when name is not an active uniform.
	UniformLocation(program uint32, name string) int32
	// Uniform setters ignore location -1.
	UniformInt(location int32, value int32)
	UniformMat4(location int32, value *[16]float32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateVertexBuffer(data []float32) uint32
	DeleteBuffer(buffer uint32)
	// VertexAttribute describes attribute index as size floats at offset
	// floats into a vertex of stride floats.
	VertexAttribute(index uint32, size, stride, offset int32)
	DrawTriangles(first, count int32)

	CreateTexture2D(upload *metadata.TextureUpload) uint32
	BindTexture2D(unit uint32, texture uint32)
	DeleteTexture(texture uint32)
}
