package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/richinsley/gobackdrop/clock"
	"github.com/richinsley/gobackdrop/scheduler"
)

// FrameSink consumes rendered frames, e.g. an ffmpeg pipe.
type FrameSink interface {
	WriteFrame(img *image.NRGBA) error
}

// Record mounts a background on dev, renders frames at a fixed step of
// 1/fps seconds and hands every drawn frame to sink. dev must implement
// FrameReader. Skipped frames are not written; a background that gives up
// ends the recording with an error.
func Record(ctx context.Context, dev Device, sink FrameSink, vp Viewport, fps, frames int, opts ...Option) error {
	reader, ok := dev.(FrameReader)
	if !ok {
		return errors.New("device cannot read back frames")
	}

	loop := scheduler.NewLoop()
	bg, err := New(dev, loop, clock.NewStepped(fps), vp, opts...)
	if err != nil {
		return err
	}
	defer bg.Close()

	logger.Infof("recording %d frames at %d fps", frames, fps)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		drawn := bg.Frames()
		loop.Tick()
		if !bg.Live() {
			return fmt.Errorf("renderer stopped after %d frames", drawn)
		}
		if bg.Frames() == drawn {
			continue
		}

		img, err := reader.ReadFrame()
		if err != nil {
			return fmt.Errorf("failed to read frame %d: %w", i, err)
		}
		if err := sink.WriteFrame(img); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}
	return nil
}
