package main

import (
	"context"
	"fmt"

	"github.com/richinsley/gobackdrop/encoder"
	"github.com/richinsley/gobackdrop/field"
	"github.com/urfave/cli"
)

func runSnapshot(ctx *cli.Context) error {
	setupLogging(ctx)
	opts := readOptions(ctx)
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", opts.Width, opts.Height)
	}

	img, err := field.Render(context.Background(), opts.Width, opts.Height, float32(opts.Time))
	if err != nil {
		return err
	}
	if err := encoder.WritePNG(opts.OutputFile, img); err != nil {
		return err
	}
	logger.Noticef("wrote %dx%d frame at t=%.2fs to %s", opts.Width, opts.Height, opts.Time, opts.OutputFile)
	return nil
}
