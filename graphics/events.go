package graphics

import "fmt"

// Event is anything a Context reports from the window system.
type Event interface {
	fmt.Stringer
}

// FramebufferSizeEvent carries the new framebuffer size in pixels. On high
// density displays this is larger than the window size.
type FramebufferSizeEvent struct {
	Width  int
	Height int
}

func (e FramebufferSizeEvent) String() string {
	return fmt.Sprintf("FramebufferSize(%d, %d)", e.Width, e.Height)
}

type Key int

// Only the keys the demo cares about get names; everything else keeps its
// window-system code.
const (
	KeyUnknown Key = -1
	KeyEscape  Key = 256
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

type KeyEvent struct {
	Key      Key
	Scancode int
	Action   Action
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("Key(%v, %d, %v)", e.Key, e.Scancode, e.Action)
}

// WindowCloseEvent is queued when the user asks the window system to close the window.
type WindowCloseEvent struct{}

func (WindowCloseEvent) String() string { return "Close" }
