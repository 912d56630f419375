package field

import "math"

// vec2 and vec3 mirror the GLSL vector types. Every arithmetic result is
// wrapped in float32() so the compiler cannot fuse a multiply and an add
// into an FMA; that keeps the CPU output stable across architectures.
type vec2 struct{ x, y float32 }

type vec3 struct{ x, y, z float32 }

func v2(x, y float32) vec2 { return vec2{x, y} }

func v3(x, y, z float32) vec3 { return vec3{x, y, z} }

func (a vec2) add(b vec2) vec2      { return vec2{float32(a.x + b.x), float32(a.y + b.y)} }
func (a vec2) sub(b vec2) vec2      { return vec2{float32(a.x - b.x), float32(a.y - b.y)} }
func (a vec2) scale(s float32) vec2 { return vec2{float32(a.x * s), float32(a.y * s)} }
func (a vec2) dot(b vec2) float32   { return float32(float32(a.x*b.x) + float32(a.y*b.y)) }
func (a vec2) length() float32      { return sqrt(a.dot(a)) }

func (a vec3) add(b vec3) vec3      { return vec3{float32(a.x + b.x), float32(a.y + b.y), float32(a.z + b.z)} }
func (a vec3) sub(b vec3) vec3      { return vec3{float32(a.x - b.x), float32(a.y - b.y), float32(a.z - b.z)} }
func (a vec3) mul(b vec3) vec3      { return vec3{float32(a.x * b.x), float32(a.y * b.y), float32(a.z * b.z)} }
func (a vec3) scale(s float32) vec3 { return vec3{float32(a.x * s), float32(a.y * s), float32(a.z * s)} }
func (a vec3) addScalar(s float32) vec3 {
	return vec3{float32(a.x + s), float32(a.y + s), float32(a.z + s)}
}
func (a vec3) dot(b vec3) float32 {
	return float32(float32(float32(a.x*b.x)+float32(a.y*b.y)) + float32(a.z*b.z))
}
func (a vec3) apply(f func(float32) float32) vec3 { return vec3{f(a.x), f(a.y), f(a.z)} }

func sin(x float32) float32  { return float32(math.Sin(float64(x))) }
func cos(x float32) float32  { return float32(math.Cos(float64(x))) }
func asin(x float32) float32 { return float32(math.Asin(float64(x))) }
func sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}
func abs(x float32) float32 { return float32(math.Abs(float64(x))) }
func fract(x float32) float32 {
	return float32(x - floor(x))
}
func pow(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}

func mix(a, b vec3, t float32) vec3 {
	return a.add(b.sub(a).scale(t))
}

// Smoothstep is the GLSL cubic Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := clamp(float32((x-edge0)/float32(edge1-edge0)), 0, 1)
	return float32(float32(t*t) * float32(3-float32(2*t)))
}
