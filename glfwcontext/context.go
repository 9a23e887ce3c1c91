package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goquad/graphics"
	options "github.com/richinsley/goquad/options"
)

// Context wraps a GLFW window and queues its events for the render loop.
type Context struct {
	window *glfw.Window
	events []graphics.Event
}

var _ graphics.Context = (*Context)(nil)

// New creates a GLFW window with an OpenGL 3.3 core context.
func New(options *options.Options, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*options.Width, *options.Height, *options.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	win.SetCloseCallback(c.glfwCloseCallback)

	return c, nil
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	c.push(graphics.KeyEvent{
		Key:      translateKey(key),
		Scancode: scancode,
		Action:   translateAction(action),
	})
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	c.push(graphics.FramebufferSizeEvent{Width: width, Height: height})
}

func (c *Context) glfwCloseCallback(w *glfw.Window) {
	c.push(graphics.WindowCloseEvent{})
}

func (c *Context) push(e graphics.Event) {
	c.events = append(c.events, e)
}

// Events returns the queued events and empties the queue.
func (c *Context) Events() []graphics.Event {
	events := c.events
	c.events = nil
	return events
}

func translateKey(key glfw.Key) graphics.Key {
	switch key {
	case glfw.KeyEscape:
		return graphics.KeyEscape
	case glfw.KeyUnknown:
		return graphics.KeyUnknown
	}
	return graphics.Key(key)
}

func translateAction(action glfw.Action) graphics.Action {
	switch action {
	case glfw.Press:
		return graphics.Press
	case glfw.Repeat:
		return graphics.Repeat
	}
	return graphics.Release
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(value bool) {
	c.window.SetShouldClose(value)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread, which
// cmd locks in init.
func InitGraphics() error {
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
