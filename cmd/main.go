package main

import (
	"os"
	"runtime"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "backdrop"
	app.Usage = "render an animated metaball background"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "window",
			Usage: "show the background in a resizable window",
			Description: `
Open a window and animate the background until it is closed or ESC is
pressed. Window resizes and display scale changes are applied on the next
frame; the backing store never exceeds the ratio cap.`,
			Flags:  append(sizeFlags(), viewFlags()...),
			Action: runWindow,
		},
		{
			Name:  "record",
			Usage: "render a fixed-step animation to a video file",
			Flags: append(sizeFlags(),
				cli.Float64Flag{
					Name:   "duration, d",
					Value:  10,
					Usage:  "length of the recording in seconds",
					EnvVar: "BACKDROP_DURATION",
				},
				cli.IntFlag{
					Name:   "fps",
					Value:  60,
					Usage:  "frames per second",
					EnvVar: "BACKDROP_FPS",
				},
				cli.StringFlag{
					Name:   "output, o",
					Value:  "backdrop.mp4",
					Usage:  "output video file",
					EnvVar: "BACKDROP_OUTPUT",
				},
				cli.StringFlag{
					Name:   "codec",
					Value:  "h264",
					Usage:  "video codec, h264 or hevc",
					EnvVar: "BACKDROP_CODEC",
				},
				cli.StringFlag{
					Name:   "ffmpeg",
					Usage:  "path to the ffmpeg executable",
					EnvVar: "BACKDROP_FFMPEG",
				},
				cli.BoolFlag{
					Name:   "gpu",
					Usage:  "render through a headless EGL context instead of the CPU",
					EnvVar: "BACKDROP_GPU",
				},
				cli.IntFlag{
					Name:   "max-retries",
					Value:  3,
					Usage:  "context restore attempts before giving up",
					EnvVar: "BACKDROP_MAX_RETRIES",
				},
			),
			Action: runRecord,
		},
		{
			Name:  "snapshot",
			Usage: "render a single frame to a PNG file",
			Flags: append(sizeFlags(),
				cli.Float64Flag{
					Name:   "time, t",
					Usage:  "animation time in seconds",
					EnvVar: "BACKDROP_TIME",
				},
				cli.StringFlag{
					Name:   "output, o",
					Value:  "backdrop.png",
					Usage:  "output image file",
					EnvVar: "BACKDROP_OUTPUT",
				},
			),
			Action: runSnapshot,
		},
		{
			Name:  "serve",
			Usage: "serve PNG stills for hosts without a rendering context",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "addr",
					Value:  ":8080",
					Usage:  "listen address",
					EnvVar: "BACKDROP_ADDR",
				},
				cli.IntFlag{
					Name:   "max-width",
					Value:  640,
					Usage:  "largest width shaded before upscaling",
					EnvVar: "BACKDROP_MAX_WIDTH",
				},
				cli.IntFlag{
					Name:   "cache",
					Value:  32,
					Usage:  "number of stills kept in memory",
					EnvVar: "BACKDROP_CACHE",
				},
			},
			Action: runServe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func sizeFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:   "width",
			Value:  1280,
			Usage:  "width in logical pixels",
			EnvVar: "BACKDROP_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  720,
			Usage:  "height in logical pixels",
			EnvVar: "BACKDROP_HEIGHT",
		},
	}
}

func viewFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:   "pixel-ratio",
			Usage:  "device pixel ratio; 0 uses the display's content scale",
			EnvVar: "BACKDROP_PIXEL_RATIO",
		},
		cli.Float64Flag{
			Name:   "ratio-cap",
			Value:  2,
			Usage:  "upper bound applied to the device pixel ratio",
			EnvVar: "BACKDROP_RATIO_CAP",
		},
		cli.IntFlag{
			Name:   "max-retries",
			Value:  3,
			Usage:  "context restore attempts before giving up",
			EnvVar: "BACKDROP_MAX_RETRIES",
		},
	}
}
