package encoder

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGetArgsDefaultsToH264(t *testing.T) {
	in, out := getArgs(Options{Width: 640, Height: 360, FPS: 30, OutputFile: "out.mp4"})
	if in["f"] != "rawvideo" || in["pix_fmt"] != "rgba" || in["s"] != "640x360" || in["r"] != 30 {
		t.Errorf("input args = %v", in)
	}
	if out["c:v"] != "libx264" || out["pix_fmt"] != "yuv420p" {
		t.Errorf("output args = %v", out)
	}
	if _, ok := out["tag:v"]; ok {
		t.Errorf("h264 output should not carry an hvc1 tag")
	}
}

func TestGetArgsHEVC(t *testing.T) {
	_, out := getArgs(Options{Width: 8, Height: 8, FPS: 60, OutputFile: "out.mp4", Codec: "hevc"})
	if out["c:v"] != "libx265" || out["tag:v"] != "hvc1" {
		t.Errorf("hevc output args = %v", out)
	}
	_, out = getArgs(Options{Width: 8, Height: 8, FPS: 60, OutputFile: "out.mkv", Codec: "hevc"})
	if _, ok := out["tag:v"]; ok {
		t.Errorf("hvc1 tag is only for mp4 containers")
	}
}

func TestNewVideoSinkValidates(t *testing.T) {
	cases := []Options{
		{Width: 0, Height: 10, FPS: 30, OutputFile: "a.mp4"},
		{Width: 10, Height: 10, FPS: 0, OutputFile: "a.mp4"},
		{Width: 10, Height: 10, FPS: 30},
	}
	for _, opts := range cases {
		if _, err := NewVideoSink(opts); err == nil {
			t.Errorf("NewVideoSink(%+v) accepted invalid options", opts)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 242})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.NRGBAModel.Convert(decoded.At(1, 1)).(color.NRGBA); got != (color.NRGBA{10, 20, 30, 242}) {
		t.Errorf("pixel = %v", got)
	}
}
