package graphics

// Context defines the interface for a windowed OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(value bool)
	// EndFrame presents the back buffer and polls the window system for events.
	EndFrame()
	// Events drains the events queued since the last call, oldest first.
	Events() []Event
	GetFramebufferSize() (int, int)
}
