package main

import (
	"github.com/richinsley/gobackdrop/log"
	"github.com/richinsley/gobackdrop/options"
	"github.com/urfave/cli"
)

var logger = log.New("backdrop")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// readOptions collects the command's flags. Flags a command does not define
// read as their zero value.
func readOptions(ctx *cli.Context) *options.BackdropOptions {
	return &options.BackdropOptions{
		Width:      ctx.Int("width"),
		Height:     ctx.Int("height"),
		PixelRatio: ctx.Float64("pixel-ratio"),
		RatioCap:   ctx.Float64("ratio-cap"),
		MaxRetries: ctx.Int("max-retries"),
		FPS:        ctx.Int("fps"),
		Duration:   ctx.Float64("duration"),
		Time:       ctx.Float64("time"),
		OutputFile: ctx.String("output"),
		Codec:      ctx.String("codec"),
		FFMPEGPath: ctx.String("ffmpeg"),
		GPU:        ctx.Bool("gpu"),
		Addr:       ctx.String("addr"),
		MaxWidth:   ctx.Int("max-width"),
		CacheSize:  ctx.Int("cache"),
	}
}
