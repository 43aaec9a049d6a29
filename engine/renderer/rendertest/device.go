// Package rendertest provides a recording renderer.Device for tests.
package rendertest

import (
	"fmt"

	"github.com/spaghettifunk/anima-cube/engine/renderer"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

var _ renderer.Device = (*Device)(nil)

// Device records every call it receives. It never touches a GPU.
type Device struct {
	// Calls is the ordered call log, e.g. "CompileShader(1)".
	Calls []string

	// FailCompile makes CompileShader fail for the given stages.
	FailCompile map[metadata.ShaderStage]bool
	FailLink    bool
	FailVerify  bool
	// Uniforms maps uniform names to locations; anything else resolves to -1.
	Uniforms map[string]int32

	Enabled       map[metadata.Capability]bool
	ViewportSize  [2]int32
	ClearCount    int
	DrawCount     int
	LastDrawCount int32
	Live          map[uint32]string
	IntUniforms   map[int32]int32
	MatUniforms   map[int32][16]float32
	Uploads       []metadata.TextureUpload
	BoundProgram  uint32
	BoundVAO      uint32
	BoundTextures map[uint32]uint32

	next        uint32
	shaderStage map[uint32]metadata.ShaderStage
}

func NewDevice() *Device {
	return &Device{
		FailCompile:   make(map[metadata.ShaderStage]bool),
		Uniforms:      map[string]int32{"projection": 0, "model": 1, "view": 2, "texture_sampler": 3},
		Enabled:       make(map[metadata.Capability]bool),
		Live:          make(map[uint32]string),
		IntUniforms:   make(map[int32]int32),
		MatUniforms:   make(map[int32][16]float32),
		BoundTextures: make(map[uint32]uint32),
		shaderStage:   make(map[uint32]metadata.ShaderStage),
	}
}

func (d *Device) record(format string, args ...interface{}) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) alloc(kind string) uint32 {
	d.next++
	d.Live[d.next] = kind
	return d.next
}

func (d *Device) free(handle uint32) {
	delete(d.Live, handle)
}

// LiveCount returns how many objects of kind have not been deleted.
func (d *Device) LiveCount(kind string) int {
	n := 0
	for _, k := range d.Live {
		if k == kind {
			n++
		}
	}
	return n
}

func (d *Device) Info() metadata.DeviceInfo {
	return metadata.DeviceInfo{Version: "4.6 fake", Vendor: "rendertest", Renderer: "recording"}
}

func (d *Device) Enable(capability metadata.Capability) {
	d.record("Enable(%d)", capability)
	d.Enabled[capability] = true
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
	d.ViewportSize = [2]int32{width, height}
}

func (d *Device) Clear(r, g, b, a float32) {
	d.record("Clear")
	d.ClearCount++
}

func (d *Device) CreateShader(stage metadata.ShaderStage) uint32 {
	h := d.alloc("shader")
	d.shaderStage[h] = stage
	d.record("CreateShader(%s)", stage)
	return h
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	stage := d.shaderStage[shader]
	d.record("CompileShader(%s)", stage)
	if d.FailCompile[stage] {
		return false, "0:1(1): error: syntax error"
	}
	return true, ""
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader(%s)", d.shaderStage[shader])
	d.free(shader)
}

func (d *Device) CreateProgram() uint32 {
	d.record("CreateProgram")
	return d.alloc("program")
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader(%s)", d.shaderStage[shader])
}

func (d *Device) LinkProgram(program uint32) (bool, string) {
	d.record("LinkProgram")
	if d.FailLink {
		return false, "link error"
	}
	return true, ""
}

func (d *Device) ValidateProgram(program uint32) (bool, string) {
	d.record("ValidateProgram")
	if d.FailLink || d.FailVerify {
		return false, "validate error"
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram(%d)", program)
	d.BoundProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram")
	d.free(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation(%s)", name)
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformInt(location int32, value int32) {
	if location < 0 {
		return
	}
	d.IntUniforms[location] = value
}

func (d *Device) UniformMat4(location int32, value *[16]float32) {
	if location < 0 {
		return
	}
	d.MatUniforms[location] = *value
}

func (d *Device) CreateVertexArray() uint32 {
	d.record("CreateVertexArray")
	return d.alloc("vao")
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray(%d)", vao)
	d.BoundVAO = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray")
	d.free(vao)
}

func (d *Device) CreateVertexBuffer(data []float32) uint32 {
	d.record("CreateVertexBuffer(%d)", len(data))
	return d.alloc("buffer")
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer")
	d.free(buffer)
}

func (d *Device) VertexAttribute(index uint32, size, stride, offset int32) {
	d.record("VertexAttribute(%d,%d,%d,%d)", index, size, stride, offset)
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles(%d,%d)", first, count)
	d.DrawCount++
	d.LastDrawCount = count
}

func (d *Device) CreateTexture2D(upload *metadata.TextureUpload) uint32 {
	d.record("CreateTexture2D(%s)", upload.Format)
	d.Uploads = append(d.Uploads, *upload)
	return d.alloc("texture")
}

func (d *Device) BindTexture2D(unit uint32, texture uint32) {
	d.record("BindTexture2D(%d)", unit)
	d.BoundTextures[unit] = texture
}

func (d *Device) DeleteTexture(texture uint32) {
	d.record("DeleteTexture")
	d.free(texture)
}
