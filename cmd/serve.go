package main

import (
	"github.com/richinsley/gobackdrop/server"
	"github.com/urfave/cli"
)

func runServe(ctx *cli.Context) error {
	setupLogging(ctx)
	opts := readOptions(ctx)

	srv := server.New(server.Config{
		MaxRenderWidth: opts.MaxWidth,
		CacheSize:      opts.CacheSize,
	})
	return srv.Run(opts.Addr)
}
