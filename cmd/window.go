package main

import (
	"errors"

	"github.com/richinsley/gobackdrop/glfwcontext"
	"github.com/richinsley/gobackdrop/renderer"
	"github.com/richinsley/gobackdrop/scheduler"
	"github.com/urfave/cli"
)

const noContextHint = "no OpenGL 4.1 context available; use `backdrop serve` or `backdrop snapshot` for a static fallback"

func runWindow(ctx *cli.Context) error {
	setupLogging(ctx)
	opts := readOptions(ctx)

	if err := glfwcontext.InitGraphics(); err != nil {
		return cli.NewExitError(noContextHint+": "+err.Error(), 2)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts.Width, opts.Height, "backdrop")
	if err != nil {
		return cli.NewExitError(noContextHint+": "+err.Error(), 2)
	}
	defer win.Shutdown()

	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = win.GetContentScale()
	}
	cssW, cssH := win.GetWindowSize()

	loop := scheduler.NewLoop()
	bg, err := renderer.New(
		renderer.NewGLDevice(win, true),
		loop,
		renderer.ContextClock(win),
		renderer.Viewport{Width: cssW, Height: cssH, PixelRatio: ratio},
		renderer.WithRatioCap(opts.RatioCap),
		renderer.WithMaxRetries(opts.MaxRetries),
	)
	if err != nil {
		if errors.Is(err, renderer.ErrNoContext) {
			return cli.NewExitError(noContextHint+": "+err.Error(), 2)
		}
		return err
	}
	defer bg.Close()

	win.OnResize(bg.Resize)
	if opts.PixelRatio <= 0 {
		win.OnContentScale(bg.SetPixelRatio)
	}

	logger.Noticef("rendering %dx%d at pixel ratio %.2f", cssW, cssH, ratio)
	for !win.ShouldClose() {
		loop.Tick()
		if !bg.Live() {
			return cli.NewExitError("background stopped after repeated context loss", 1)
		}
		win.EndFrame()
	}
	logger.Infof("window closed after %d frames", bg.Frames())
	return nil
}
