package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/richinsley/gobackdrop/encoder"
	"github.com/richinsley/gobackdrop/headless"
	"github.com/richinsley/gobackdrop/renderer"
	"github.com/urfave/cli"
)

// Render a fixed-step animation and pipe it through ffmpeg.
func runRecord(ctx *cli.Context) error {
	setupLogging(ctx)
	opts := readOptions(ctx)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var dev renderer.Device
	if opts.GPU {
		hctx, err := headless.NewHeadless(opts.Width, opts.Height)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("%s: %v", noContextHint, err), 2)
		}
		defer hctx.Shutdown()
		dev = renderer.NewGLDevice(hctx, false)
	} else {
		dev = renderer.NewSoftwareDevice(runCtx)
	}

	sink, err := encoder.NewVideoSink(encoder.Options{
		Width:      opts.Width,
		Height:     opts.Height,
		FPS:        opts.FPS,
		OutputFile: opts.OutputFile,
		Codec:      opts.Codec,
		FFMPEGPath: opts.FFMPEGPath,
	})
	if err != nil {
		return err
	}

	vp := renderer.Viewport{Width: opts.Width, Height: opts.Height, PixelRatio: 1}
	err = renderer.Record(runCtx, dev, sink, vp, opts.FPS, opts.Frames(), renderer.WithMaxRetries(opts.MaxRetries))
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	logger.Noticef("wrote %d frames to %s", opts.Frames(), opts.OutputFile)
	return nil
}
