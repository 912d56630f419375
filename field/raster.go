package field

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ToNRGBA quantises a shaded colour the way an 8-bit framebuffer does:
// clamp to [0,1], scale by 255 and round to nearest.
func ToNRGBA(c Color) color.NRGBA {
	q := func(v float32) uint8 {
		return uint8(float32(clamp(v, 0, 1)*255) + 0.5)
	}
	return color.NRGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: q(c.A)}
}

// Rasterize shades every pixel of dst at time t. Row 0 of dst is the top of
// the frame, so rows are flipped relative to gl_FragCoord. Work is split into
// horizontal bands, one per worker.
func Rasterize(ctx context.Context, dst *image.NRGBA, t float32) error {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	resX, resY := float32(w), float32(h)

	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	band := (h + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < h; start += band {
		y0, y1 := start, min(start+band, h)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fragY := float32(float32(h-1-y) + 0.5)
				row := dst.Pix[dst.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
				for x := 0; x < w; x++ {
					c := ToNRGBA(Shade(float32(float32(x)+0.5), fragY, resX, resY, t))
					i := x * 4
					row[i+0] = c.R
					row[i+1] = c.G
					row[i+2] = c.B
					row[i+3] = c.A
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Render allocates a w×h image and rasterizes it at time t.
func Render(ctx context.Context, w, h int, t float32) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if err := Rasterize(ctx, img, t); err != nil {
		return nil, err
	}
	return img, nil
}
