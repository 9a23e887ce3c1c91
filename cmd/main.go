package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/goquad/glfwcontext"
	"github.com/richinsley/goquad/graphics"
	"github.com/richinsley/goquad/headless"
	options "github.com/richinsley/goquad/options"
	renderer "github.com/richinsley/goquad/renderer"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

// newContext opens the GL context for this run and returns the function that
// tears the window system down again.
func newContext(opts *options.Options) (graphics.Context, func(), error) {
	if *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return h, func() {}, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	// If recording, the window is hidden.
	ctx, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	return ctx, glfwcontext.TerminateGraphics, nil
}

func main() {
	opts := options.Bind(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Animated quad demo")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ctx, terminate, err := newContext(opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	r, err := renderer.Setup(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to set up renderer: %v", err)
	}

	// GL teardown has to stay on the main thread, so on a signal the closer
	// only stops the loop and waits for main to finish.
	done := make(chan struct{})
	closer.Bind(func() {
		r.Stop()
		<-done
	})

	var runErr error
	if *opts.Record {
		log.Println("Starting offscreen render loop...")
		runErr = r.RunOffscreen(opts)
		if runErr == nil {
			log.Printf("Successfully rendered to %s", *opts.OutputFile)
		}
	} else {
		log.Println("Starting interactive render loop...")
		r.Run()
	}

	r.Shutdown()
	ctx.Shutdown()
	terminate()
	close(done)

	if runErr != nil {
		closer.Fatalln("Offscreen rendering failed:", runErr)
	}
	closer.Close()
}
