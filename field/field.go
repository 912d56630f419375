// Package field is the closed-form metaball field behind the animated
// background. The GLSL program in package shader is generated from the same
// tables, so Shade is a per-pixel reference for the GPU path and doubles as
// the CPU fallback rasterizer.
package field

// Ball describes one metaball: its elliptical orbit, the two noise rates that
// jitter it and its radius.
type Ball struct {
	CenterX, CenterY float32
	SizeX, SizeY     float32
	Speed            float32
	Offset           float32
	NoiseX, NoiseY   float32
	Radius           float32
}

// Balls are ordered by decreasing radius. All of them orbit the middle of
// the screen and differ in speed and phase.
var Balls = [4]Ball{
	{SizeX: 1.2, SizeY: 0.9, Speed: 0.30, Offset: 0, NoiseX: 0.3, NoiseY: 0.4, Radius: 0.28},
	{SizeX: 1.2, SizeY: 0.9, Speed: 0.25, Offset: 2, NoiseX: 0.5, NoiseY: 0.6, Radius: 0.24},
	{SizeX: 1.2, SizeY: 0.9, Speed: 0.20, Offset: 4, NoiseX: 0.7, NoiseY: 0.8, Radius: 0.22},
	{SizeX: 1.2, SizeY: 0.9, Speed: 0.15, Offset: 6, NoiseX: 0.9, NoiseY: 1.0, Radius: 0.20},
}

const (
	// TimeScale slows the orbits and their jitter relative to elapsed time.
	TimeScale = float32(0.15)
	// Orbits bounce inside [-BoundX, BoundX] × [-BoundY, BoundY].
	BoundX = float32(1.6)
	BoundY = float32(1.2)

	Softness    = float32(1.6)
	NoiseScale  = float32(0.15)
	NoiseClamp  = float32(0.2)
	PulseBase   = float32(0.95)
	PulseAmp    = float32(0.1)
	PulseRate   = float32(0.8)
	MinDistance = float32(1e-4)

	EdgeLow    = float32(0.95)
	EdgeHigh   = float32(1.05)
	GlowHigh   = float32(2.0)
	EdgeMix    = float32(0.8)
	GlowAmount = float32(0.3)

	PaletteSpeed = float32(0.05)
	GrainFreq    = float32(6.0)
	GrainSpeed   = float32(0.05)
	GrainAmount  = float32(0.02)

	VignetteOuter    = float32(1.8)
	VignetteInner    = float32(0.5)
	VignetteWarpFreq = float32(1.5)
	VignetteWarp     = float32(0.05)

	Gamma      = float32(0.9)
	Brightness = float32(1.2)
	Alpha      = float32(0.95)
)

// Palette and tint constants.
var (
	BaseColor = [3]float32{0.02, 0.03, 0.05}
	GlowTint  = [3]float32{0.2, 0.3, 0.4}
	PaletteA  = [3]float32{0.05, 0.1, 0.15}
	PaletteB  = [3]float32{0.2, 0.3, 0.4}
	PaletteC  = [3]float32{0.25, 0.35, 0.45}
	PaletteD  = [3]float32{0.1, 0.2, 0.3}
)

const PaletteTau = float32(6.28318)

// Color is a straight (non-premultiplied) RGBA colour with unclamped
// channels, exactly as the fragment stage emits it.
type Color struct {
	R, G, B, A float32
}

func bounce(p, bound float32) float32 {
	return float32(bound * sin(asin(clamp(float32(p/bound), -1, 1))))
}

// Orbit returns the bounded position of b at elapsed time t, before noise.
func Orbit(b Ball, t float32) (float32, float32) {
	slow := float32(t * TimeScale)
	x := float32(b.CenterX + float32(b.SizeX*sin(float32(float32(slow*b.Speed)+b.Offset))))
	y := float32(b.CenterY + float32(b.SizeY*cos(float32(float32(float32(slow*b.Speed)*1.3)+float32(b.Offset*2.1)))))
	return bounce(x, BoundX), bounce(y, BoundY)
}

// Jitter returns the noise offset applied to b at elapsed time t. The 0.15
// scale and the 0.2 clamp are both kept.
func Jitter(b Ball, t float32) (float32, float32) {
	slow := float32(t * TimeScale)
	px := float32(slow * b.NoiseX)
	py := float32(slow * b.NoiseY)
	nx := float32(Simplex(px, px) * NoiseScale)
	ny := float32(Simplex(py, py) * NoiseScale)
	return clamp(nx, -NoiseClamp, NoiseClamp), clamp(ny, -NoiseClamp, NoiseClamp)
}

// Pulse is the slow breathing factor of a ball's radius. Its phase follows
// the ball's current centre.
func Pulse(cx, cy, t float32) float32 {
	phase := float32(float32(t*PulseRate) + float32(cx+cy))
	return float32(PulseBase + float32(PulseAmp*sin(phase)))
}

// Center returns the perturbed centre of b at time t.
func Center(b Ball, t float32) (float32, float32) {
	x, y := Orbit(b, t)
	jx, jy := Jitter(b, t)
	return float32(x + jx), float32(y + jy)
}

// Value sums the metaball contributions at uv.
func Value(u, v, t float32) float32 {
	uv := v2(u, v)
	var sum float32
	for _, b := range Balls {
		cx, cy := Center(b, t)
		r := float32(b.Radius * Pulse(cx, cy, t))
		d := max(uv.sub(v2(cx, cy)).length(), MinDistance)
		sum = float32(sum + pow(float32(r/d), Softness))
	}
	return sum
}

// UV maps a fragment coordinate to [-1, 1] vertically, with x stretched by
// the aspect ratio.
func UV(fragX, fragY, resX, resY float32) (float32, float32) {
	u := float32(float32(float32(fragX/resX)*2) - 1)
	v := float32(float32(float32(fragY/resY)*2) - 1)
	return float32(u * float32(resX/resY)), v
}

func palette(x float32) vec3 {
	a := v3(PaletteA[0], PaletteA[1], PaletteA[2])
	b := v3(PaletteB[0], PaletteB[1], PaletteB[2])
	c := v3(PaletteC[0], PaletteC[1], PaletteC[2])
	d := v3(PaletteD[0], PaletteD[1], PaletteD[2])
	arg := c.scale(x).add(d).scale(PaletteTau)
	return a.add(b.mul(arg.apply(cos)))
}

// Shade evaluates the background at a fragment coordinate. fragY grows
// upwards, matching gl_FragCoord.
func Shade(fragX, fragY, resX, resY, t float32) Color {
	u, v := UV(fragX, fragY, resX, resY)
	uv := v2(u, v)
	f := Value(u, v, t)

	edge := Smoothstep(EdgeLow, EdgeHigh, f)
	innerGlow := Smoothstep(EdgeHigh, GlowHigh, f)

	base := v3(BaseColor[0], BaseColor[1], BaseColor[2])
	tint := v3(GlowTint[0], GlowTint[1], GlowTint[2])

	color := mix(base, palette(float32(edge+float32(t*PaletteSpeed))), float32(edge*EdgeMix))
	color = color.add(tint.scale(innerGlow).scale(GlowAmount))

	drift := float32(t * GrainSpeed)
	g := uv.scale(GrainFreq)
	grain := float32(Simplex(float32(g.x+drift), float32(g.y+drift)) * GrainAmount)
	color = color.addScalar(float32(grain * edge))

	w := uv.scale(VignetteWarpFreq)
	warp := float32(Simplex(w.x, w.y) * VignetteWarp)
	vignette := Smoothstep(VignetteOuter, VignetteInner, uv.add(v2(warp, warp)).length())
	color = color.scale(vignette)

	// Negative channels are clamped before the gamma curve; pow of a
	// negative base has no defined result on the GPU.
	color = color.apply(func(c float32) float32 { return pow(max(c, 0), Gamma) }).scale(Brightness)
	return Color{color.x, color.y, color.z, Alpha}
}
