package renderer

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goquad/geometry"
	"github.com/richinsley/goquad/shader"
)

// Pass is the GPU work for one frame.
type Pass interface {
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	// Draw activates the program, binds the geometry, assigns value to the
	// named uniform and issues the draw call.
	Draw(uniform string, value float32)
	Destroy()
}

// QuadPass draws the quad with a single program.
type QuadPass struct {
	program *shader.Program
	quad    *geometry.Quad
}

func NewQuadPass(program *shader.Program, quad *geometry.Quad) *QuadPass {
	return &QuadPass{program: program, quad: quad}
}

func (p *QuadPass) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (p *QuadPass) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (p *QuadPass) Draw(uniform string, value float32) {
	p.program.Use()
	p.quad.Bind()
	p.program.SetFloat(uniform, value)
	p.quad.Draw()
}

func (p *QuadPass) Destroy() {
	p.program.Delete()
	p.quad.Delete()
}
