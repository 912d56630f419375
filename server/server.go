// Package server serves CPU-rendered stills of the background for hosts that
// have no rendering context and fall back to a static image.
package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richinsley/gobackdrop/field"
	"github.com/richinsley/gobackdrop/log"
	"golang.org/x/image/draw"
)

var logger = log.New("server")

const (
	DefaultMaxRenderWidth = 640
	DefaultMaxSize        = 4096
	DefaultCacheSize      = 32
)

type Config struct {
	// MaxRenderWidth caps the width actually shaded; larger requests are
	// upscaled.
	MaxRenderWidth int
	// MaxSize rejects requests wider or taller than this.
	MaxSize   int
	CacheSize int
}

type renderFunc func(ctx context.Context, w, h int, t float32) (*image.NRGBA, error)

type Server struct {
	cfg    Config
	cache  *stillCache
	render renderFunc
	engine *gin.Engine
}

func New(cfg Config) *Server {
	if cfg.MaxRenderWidth <= 0 {
		cfg.MaxRenderWidth = DefaultMaxRenderWidth
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}

	s := &Server{
		cfg:    cfg,
		cache:  newStillCache(cfg.CacheSize),
		render: field.Render,
	}

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/backdrop.png", s.handleBackdrop)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	logger.Noticef("serving fallback background on %s", addr)
	return s.engine.Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s %d %s", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start))
	}
}

func badRequest(c *gin.Context, format string, args ...interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(format, args...)})
}

func (s *Server) parseSize(c *gin.Context, name string, def int) (int, bool) {
	raw := c.DefaultQuery(name, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > s.cfg.MaxSize {
		badRequest(c, "%s must be an integer in [1, %d]", name, s.cfg.MaxSize)
		return 0, false
	}
	return v, true
}

func (s *Server) handleBackdrop(c *gin.Context) {
	w, ok := s.parseSize(c, "w", 1280)
	if !ok {
		return
	}
	h, ok := s.parseSize(c, "h", 720)
	if !ok {
		return
	}
	t64, err := strconv.ParseFloat(c.DefaultQuery("t", "0"), 32)
	if err != nil || t64 < 0 || math.IsInf(t64, 0) || math.IsNaN(t64) {
		badRequest(c, "t must be a non-negative number of seconds")
		return
	}
	t := float32(t64)

	key := stillKey{w: w, h: h, t: t}
	if data, ok := s.cache.get(key); ok {
		s.writePNG(c, data)
		return
	}

	data, err := s.renderStill(c.Request.Context(), w, h, t)
	if err != nil {
		logger.Errorf("render %dx%d at t=%v failed: %v", w, h, t, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	s.cache.put(key, data)
	s.writePNG(c, data)
}

func (s *Server) writePNG(c *gin.Context, data []byte) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}

// renderStill shades at most MaxRenderWidth pixels wide, keeping the aspect
// ratio, then upscales to the requested size.
func (s *Server) renderStill(ctx context.Context, w, h int, t float32) ([]byte, error) {
	rw, rh := w, h
	if rw > s.cfg.MaxRenderWidth {
		rw = s.cfg.MaxRenderWidth
		rh = max(1, int(math.Round(float64(h)*float64(rw)/float64(w))))
	}

	img, err := s.render(ctx, rw, rh, t)
	if err != nil {
		return nil, err
	}

	var out image.Image = img
	if rw != w || rh != h {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
