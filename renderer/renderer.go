package renderer

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goquad/geometry"
	"github.com/richinsley/goquad/graphics"
	options "github.com/richinsley/goquad/options"
	shader "github.com/richinsley/goquad/shader"
)

// ClearColor is the framebuffer clear color.
var ClearColor = mgl32.Vec4{0.2, 0.2, 0.2, 1.0}

// UniformName is the float uniform the animation value is written to.
const UniformName = "z"

var glInitOnce sync.Once

type State int

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	if s == Closing {
		return "Closing"
	}
	return "Running"
}

type Renderer struct {
	context           graphics.Context
	pass              Pass
	clock             Clock
	state             State
	verbose           bool
	stopRequested     atomic.Bool
	offscreenRenderer *OffscreenRenderer
}

// NewRenderer wires a render loop around an existing context and pass.
func NewRenderer(ctx graphics.Context, pass Pass, options *options.Options) *Renderer {
	r := &Renderer{
		context: ctx,
		pass:    pass,
	}
	if options != nil && options.Verbose != nil {
		r.verbose = *options.Verbose
	}
	return r
}

// Setup makes ctx current, loads the OpenGL entry points and builds the
// program and quad the loop draws.
func Setup(ctx graphics.Context, options *options.Options) (*Renderer, error) {
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := shader.Load(*options.VertexShader, *options.FragmentShader)
	if err != nil {
		return nil, err
	}
	quad := geometry.NewQuad()

	r := NewRenderer(ctx, NewQuadPass(program, quad), options)
	width, height := ctx.GetFramebufferSize()
	r.pass.Viewport(width, height)
	return r, nil
}

func (r *Renderer) State() State { return r.state }

func (r *Renderer) Clock() *Clock { return &r.clock }

// Stop asks the loop to close before its next frame. Safe to call from any goroutine.
func (r *Renderer) Stop() {
	r.stopRequested.Store(true)
}

// Run renders until the window is asked to close.
func (r *Renderer) Run() {
	for r.Step() {
	}
	log.Printf("Render loop finished after %d frames", r.clock.Frames())
}

// Step runs one loop iteration. It returns false, without rendering, once
// the loop is closing.
func (r *Renderer) Step() bool {
	r.processEvents()
	if r.context.ShouldClose() || r.stopRequested.Load() {
		r.state = Closing
	}
	if r.state == Closing {
		return false
	}

	r.RenderFrame()
	r.context.EndFrame()
	r.clock.Advance()
	return true
}

func (r *Renderer) processEvents() {
	for _, event := range r.context.Events() {
		switch e := event.(type) {
		case graphics.FramebufferSizeEvent:
			r.pass.Viewport(e.Width, e.Height)
		case graphics.KeyEvent:
			if e.Key == graphics.KeyEscape && e.Action == graphics.Press {
				r.context.SetShouldClose(true)
				r.state = Closing
			} else if r.verbose {
				log.Printf("%v", e)
			}
		case graphics.WindowCloseEvent:
			r.state = Closing
		default:
			if r.verbose {
				log.Printf("%v", e)
			}
		}
	}
}

// RenderFrame draws the quad for the current clock time into the bound framebuffer.
func (r *Renderer) RenderFrame() {
	r.pass.Clear(ClearColor)
	r.pass.Draw(UniformName, AnimationValue(r.clock.Time()))
}

// Shutdown releases the GPU objects the renderer owns. The context itself is
// shut down by its owner.
func (r *Renderer) Shutdown() {
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
		r.offscreenRenderer = nil
	}
	if r.pass != nil {
		r.pass.Destroy()
		r.pass = nil
	}
}
