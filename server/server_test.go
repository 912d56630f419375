package server

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richinsley/gobackdrop/field"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := New(Config{})
	rec := get(t, s.Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestBackdropRendersPNG(t *testing.T) {
	s := New(Config{})
	rec := get(t, s.Handler(), "/backdrop.png?w=32&h=18&t=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 32, 18) {
		t.Errorf("bounds = %v, want 32x18", img.Bounds())
	}

	// Served pixels match the reference shader at full resolution.
	want, err := field.Render(context.Background(), 32, 18, 0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r1, g1, b1, a1 := img.At(5, 7).RGBA()
	r2, g2, b2, a2 := want.At(5, 7).RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
		t.Errorf("served pixel differs from field.Render")
	}
}

func TestBackdropUpscalesLargeRequests(t *testing.T) {
	s := New(Config{MaxRenderWidth: 16})
	var rendered [2]int
	s.render = func(ctx context.Context, w, h int, tm float32) (*image.NRGBA, error) {
		rendered = [2]int{w, h}
		return field.Render(ctx, w, h, tm)
	}

	rec := get(t, s.Handler(), "/backdrop.png?w=64&h=32")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rendered != [2]int{16, 8} {
		t.Errorf("shaded at %v, want [16 8]", rendered)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Errorf("bounds = %v, want 64x32", img.Bounds())
	}
}

func TestBackdropCachesStills(t *testing.T) {
	s := New(Config{CacheSize: 2})
	var calls atomic.Int32
	s.render = func(ctx context.Context, w, h int, tm float32) (*image.NRGBA, error) {
		calls.Add(1)
		return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
	}

	for i := 0; i < 3; i++ {
		if rec := get(t, s.Handler(), "/backdrop.png?w=8&h=8&t=1.5"); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("rendered %d times, want 1", calls.Load())
	}

	get(t, s.Handler(), "/backdrop.png?w=8&h=8&t=2")
	get(t, s.Handler(), "/backdrop.png?w=8&h=8&t=3")
	if s.cache.len() != 2 {
		t.Errorf("cache holds %d entries, want 2", s.cache.len())
	}
	get(t, s.Handler(), "/backdrop.png?w=8&h=8&t=1.5")
	if calls.Load() != 4 {
		t.Errorf("evicted entry not re-rendered: %d renders", calls.Load())
	}
}

func TestBackdropRejectsBadParams(t *testing.T) {
	s := New(Config{MaxSize: 100})
	for _, url := range []string{
		"/backdrop.png?w=0&h=10",
		"/backdrop.png?w=10&h=-1",
		"/backdrop.png?w=101&h=10",
		"/backdrop.png?w=abc&h=10",
		"/backdrop.png?w=10&h=10&t=-1",
		"/backdrop.png?w=10&h=10&t=nope",
	} {
		rec := get(t, s.Handler(), url)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%s: body %q is not a JSON error", url, rec.Body.String())
		}
	}
}

func TestStillCacheLRU(t *testing.T) {
	c := newStillCache(2)
	a, b, d := stillKey{1, 1, 0}, stillKey{2, 2, 0}, stillKey{3, 3, 0}
	c.put(a, []byte("a"))
	c.put(b, []byte("b"))
	c.get(a)
	c.put(d, []byte("d"))
	if _, ok := c.get(b); ok {
		t.Errorf("least recently used entry survived")
	}
	if v, ok := c.get(a); !ok || string(v) != "a" {
		t.Errorf("recently used entry evicted")
	}
}
