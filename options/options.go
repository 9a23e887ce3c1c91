package options

import (
	"flag"
	"fmt"
	"strings"
)

const (
	DefaultWidth          = 800
	DefaultHeight         = 800
	DefaultTitle          = "Game Engine"
	DefaultVertexShader   = "shaders/quad.vs"
	DefaultFragmentShader = "shaders/quad.fs"
	DefaultFrames         = 600
	DefaultFPS            = 60
	DefaultOutputFile     = "output.mp4"
)

type Options struct {
	VertexShader   *string
	FragmentShader *string
	Width          *int
	Height         *int
	Title          *string
	Help           *bool
	Verbose        *bool // log window events the render loop does not act on

	// Recording options
	Record     *bool
	Headless   *bool // record through an EGL pbuffer instead of a hidden window
	Frames     *int
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}

// Bind registers every option on fs and returns the Options the flags write into.
func Bind(fs *flag.FlagSet) *Options {
	return &Options{
		VertexShader:   fs.String("vertex", DefaultVertexShader, "Path to the vertex shader source"),
		FragmentShader: fs.String("fragment", DefaultFragmentShader, "Path to the fragment shader source"),
		Width:          fs.Int("width", DefaultWidth, "Window width"),
		Height:         fs.Int("height", DefaultHeight, "Window height"),
		Title:          fs.String("title", DefaultTitle, "Window title"),
		Help:           fs.Bool("help", false, "Show help message"),
		Verbose:        fs.Bool("verbose", false, "Log unhandled window events"),
		Record:         fs.Bool("record", false, "Render offscreen and encode to a video file"),
		Headless:       fs.Bool("headless", false, "Record without a window system (EGL, Linux only); requires -record"),
		Frames:         fs.Int("frames", DefaultFrames, "Number of frames to record"),
		FPS:            fs.Int("fps", DefaultFPS, "Frames per second for recording"),
		OutputFile:     fs.String("output", DefaultOutputFile, "Output file name for recording"),
		FFMPEGPath:     fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}

// Default returns the options a run gets with no flags set.
func Default() *Options {
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	return Bind(fs)
}

// Validate reports the first option that cannot produce a working run.
func (o *Options) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if strings.TrimSpace(*o.VertexShader) == "" {
		return fmt.Errorf("vertex shader path is empty")
	}
	if strings.TrimSpace(*o.FragmentShader) == "" {
		return fmt.Errorf("fragment shader path is empty")
	}
	if *o.Headless && !*o.Record {
		return fmt.Errorf("-headless requires -record")
	}
	if *o.Record {
		if *o.Frames <= 0 {
			return fmt.Errorf("frames must be positive, got %d", *o.Frames)
		}
		if *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if *o.OutputFile == "" {
			return fmt.Errorf("output file is required when recording")
		}
		// yuv420p subsamples chroma 2x2.
		if *o.Width%2 != 0 || *o.Height%2 != 0 {
			return fmt.Errorf("recording size must be even, got %dx%d", *o.Width, *o.Height)
		}
	}
	return nil
}
