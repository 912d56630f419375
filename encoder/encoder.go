package encoder

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/richinsley/gobackdrop/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var logger = log.New("encoder")

// Options configures a VideoSink.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	Codec      string // "h264" (default) or "hevc"
	FFMPEGPath string
}

// VideoSink pipes raw RGBA frames into an ffmpeg process.
type VideoSink struct {
	opts   Options
	pipe   *io.PipeWriter
	errc   chan error
	frames int64
	closed bool
}

func getArgs(opts Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}
	if opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(opts.OutputFile, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// NewVideoSink starts ffmpeg and returns a sink ready for frames.
func NewVideoSink(opts Options) (*VideoSink, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid video size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.OutputFile == "" {
		return nil, errors.New("missing output file")
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	s := &VideoSink{opts: opts, pipe: pipeWriter, errc: make(chan error, 1)}
	go func() {
		err := ffmpegCmd.Run()
		// Unblock a writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		s.errc <- err
	}()
	logger.Infof("encoding %dx%d@%d to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return s, nil
}

// WriteFrame writes one frame. Its size must match the sink.
func (s *VideoSink) WriteFrame(img *image.NRGBA) error {
	if s.closed {
		return errors.New("video sink is closed")
	}
	b := img.Bounds()
	if b.Dx() != s.opts.Width || b.Dy() != s.opts.Height {
		return fmt.Errorf("frame is %dx%d, sink expects %dx%d", b.Dx(), b.Dy(), s.opts.Width, s.opts.Height)
	}
	rowBytes := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := s.pipe.Write(img.Pix[off : off+rowBytes]); err != nil {
			return fmt.Errorf("failed to write frame %d to ffmpeg: %w", s.frames, err)
		}
	}
	s.frames++
	return nil
}

// Close signals EOF and waits for ffmpeg to finish.
func (s *VideoSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pipe.Close()
	err := <-s.errc
	if err != nil {
		return fmt.Errorf("ffmpeg failed after %d frames: %w", s.frames, err)
	}
	logger.Infof("wrote %d frames to %s", s.frames, s.opts.OutputFile)
	return nil
}
