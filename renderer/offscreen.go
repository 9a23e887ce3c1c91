package renderer

import (
	"fmt"
	"io"
	"log"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	options "github.com/richinsley/goquad/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const bytesPerPixel = 4 // RGBA8

// Frame is one rendered frame's pixels, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// OffscreenRenderer is an RGBA8 framebuffer the loop renders into when recording.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
}

func (or *OffscreenRenderer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (or *OffscreenRenderer) FrameSize() int {
	return or.width * or.height * bytesPerPixel
}

// readPixels reads the bound framebuffer bottom row first.
func (or *OffscreenRenderer) readPixels() []byte {
	pixels := make([]byte, or.FrameSize())
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

// encoderArgs builds the ffmpeg arguments for raw RGBA frames on stdin.
// GL rows come bottom first, so the output is flipped.
func encoderArgs(options *options.Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *options.Width, *options.Height),
		"framerate": *options.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// writeFrames copies every frame to w in order until frames is closed.
func writeFrames(w io.Writer, frames <-chan *Frame, frameSize int) error {
	var err error
	for frame := range frames {
		if err != nil {
			continue // keep draining so the producer never blocks
		}
		if len(frame.Pixels) != frameSize {
			err = fmt.Errorf("frame %d has %d bytes, expected %d", frame.PTS, len(frame.Pixels), frameSize)
			continue
		}
		if _, werr := w.Write(frame.Pixels); werr != nil {
			err = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, werr)
		}
	}
	return err
}

// runEncoder is the consumer. It starts ffmpeg and feeds it frames from frameChan.
func (r *Renderer) runEncoder(options *options.Options, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(options)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*options.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *options.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*options.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		if err == nil {
			err = io.ErrClosedPipe
		}
		// Unblocks writeFrames if ffmpeg exits early.
		pipeReader.CloseWithError(err)
		errc <- err
	}()

	writeErr := writeFrames(pipeWriter, frameChan, r.offscreenRenderer.FrameSize())
	pipeWriter.Close()
	runErr := <-errc
	if runErr == io.ErrClosedPipe {
		runErr = nil
	}

	switch {
	case runErr != nil:
		doneChan <- fmt.Errorf("ffmpeg failed: %w", runErr)
	default:
		doneChan <- writeErr
	}
}

// RunOffscreen is the producer. It renders a fixed number of frames into the
// offscreen framebuffer and sends them to the encoder.
func (r *Renderer) RunOffscreen(options *options.Options) error {
	var err error
	r.offscreenRenderer, err = NewOffscreenRenderer(*options.Width, *options.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen renderer: %w", err)
	}

	log.Printf("Recording %d frames at %d fps to %s", *options.Frames, *options.FPS, *options.OutputFile)
	frameChan := make(chan *Frame, 3)
	encoderDoneChan := make(chan error, 1)

	go r.runEncoder(options, frameChan, encoderDoneChan)

	r.offscreenRenderer.Bind()
	r.pass.Viewport(*options.Width, *options.Height)
	for i := 0; i < *options.Frames; i++ {
		if r.stopRequested.Load() {
			log.Printf("Recording stopped after %d frames", i)
			break
		}
		r.RenderFrame()
		frameChan <- &Frame{Pixels: r.offscreenRenderer.readPixels(), PTS: int64(i)}
		r.clock.Advance()
	}
	r.offscreenRenderer.Unbind()

	close(frameChan)
	return <-encoderDoneChan
}
