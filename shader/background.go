package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/richinsley/gobackdrop/field"
)

// Uniform names declared by the background program. The translator may
// rename them; look the mapped names up in its variable table.
const (
	TimeUniform       = "uTime"
	ResolutionUniform = "uResolution"
)

// glslFloat formats v as the shortest literal that round-trips to the same
// float32, always with a decimal point or exponent so GLSL parses a float.
func glslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func glslVec3(v [3]float32) string {
	return fmt.Sprintf("vec3(%s, %s, %s)", glslFloat(v[0]), glslFloat(v[1]), glslFloat(v[2]))
}

const backgroundPreamble = `#version 300 es
precision highp float;
precision highp int;

uniform float uTime;
uniform vec2  uResolution;

out vec4 fragColor;

vec2 hash2(vec2 p) {
    p = vec2(dot(p, vec2(127.1, 311.7)), dot(p, vec2(269.5, 183.3)));
    return -1.0 + 2.0 * fract(sin(p) * 43758.5453123);
}

float snoise(vec2 p) {
    const float K1 = 0.366025404;
    const float K2 = 0.211324865;

    vec2 i = floor(p + (p.x + p.y) * K1);
    vec2 a = p - i + (i.x + i.y) * K2;
    vec2 o = (a.x > a.y) ? vec2(1.0, 0.0) : vec2(0.0, 1.0);
    vec2 b = a - o + K2;
    vec2 c = a - 1.0 + 2.0 * K2;

    vec3 h = max(0.5 - vec3(dot(a, a), dot(b, b), dot(c, c)), 0.0);
    vec3 n = h * h * h * h * vec3(dot(a, hash2(i + 0.0)), dot(b, hash2(i + o)), dot(c, hash2(i + 1.0)));
    return dot(n, vec3(70.0));
}
`

// BackgroundFragment returns the WebGL2 fragment stage for the background.
// Ball parameters and palette constants are spliced in from package field.
func BackgroundFragment() string {
	var sb strings.Builder
	sb.WriteString(backgroundPreamble)

	fmt.Fprintf(&sb, `
vec2 orbit(float t, vec2 center, vec2 size, float speed, float offset) {
    vec2 p = center + size * vec2(sin(t * speed + offset), cos(t * speed * 1.3 + offset * 2.1));
    p.x = %[1]s * sin(asin(clamp(p.x / %[1]s, -1.0, 1.0)));
    p.y = %[2]s * sin(asin(clamp(p.y / %[2]s, -1.0, 1.0)));
    return p;
}

vec3 palette(float t) {
    return %[3]s + %[4]s * cos(%[7]s * (%[5]s * t + %[6]s));
}
`, glslFloat(field.BoundX), glslFloat(field.BoundY),
		glslVec3(field.PaletteA), glslVec3(field.PaletteB), glslVec3(field.PaletteC), glslVec3(field.PaletteD),
		glslFloat(field.PaletteTau))

	fmt.Fprintf(&sb, `
void main() {
    vec2 uv = gl_FragCoord.xy / uResolution * 2.0 - 1.0;
    uv.x *= uResolution.x / uResolution.y;
    float t = uTime;
    float slowTime = t * %s;
    float f = 0.0;
`, glslFloat(field.TimeScale))

	for i, b := range field.Balls {
		fmt.Fprintf(&sb, `
    {
        vec2 c = orbit(slowTime, vec2(%[2]s, %[3]s), vec2(%[4]s, %[5]s), %[6]s, %[7]s);
        vec2 n = vec2(snoise(vec2(slowTime * %[8]s)), snoise(vec2(slowTime * %[9]s))) * %[11]s;
        c += clamp(n, vec2(-%[12]s), vec2(%[12]s));
        float pulse = %[13]s + %[14]s * sin(t * %[15]s + dot(c, vec2(1.0)));
        float d = max(length(uv - c), %[16]s);
        f += pow(%[10]s * pulse / d, %[17]s); // ball %[1]d
    }
`, i,
			glslFloat(b.CenterX), glslFloat(b.CenterY), glslFloat(b.SizeX), glslFloat(b.SizeY),
			glslFloat(b.Speed), glslFloat(b.Offset), glslFloat(b.NoiseX), glslFloat(b.NoiseY),
			glslFloat(b.Radius), glslFloat(field.NoiseScale), glslFloat(field.NoiseClamp),
			glslFloat(field.PulseBase), glslFloat(field.PulseAmp), glslFloat(field.PulseRate),
			glslFloat(field.MinDistance), glslFloat(field.Softness))
	}

	fmt.Fprintf(&sb, `
    float edge = smoothstep(%[1]s, %[2]s, f);
    float innerGlow = smoothstep(%[2]s, %[3]s, f);

    vec3 color = mix(%[4]s, palette(edge + t * %[5]s), edge * %[6]s);
    color += %[7]s * innerGlow * %[8]s;
    color += snoise(uv * %[9]s + t * %[10]s) * %[11]s * edge;
    color *= smoothstep(%[12]s, %[13]s, length(uv + snoise(uv * %[14]s) * %[15]s));
    color = pow(max(color, vec3(0.0)), vec3(%[16]s)) * %[17]s;

    fragColor = vec4(color, %[18]s);
}
`,
		glslFloat(field.EdgeLow), glslFloat(field.EdgeHigh), glslFloat(field.GlowHigh),
		glslVec3(field.BaseColor), glslFloat(field.PaletteSpeed), glslFloat(field.EdgeMix),
		glslVec3(field.GlowTint), glslFloat(field.GlowAmount),
		glslFloat(field.GrainFreq), glslFloat(field.GrainSpeed), glslFloat(field.GrainAmount),
		glslFloat(field.VignetteOuter), glslFloat(field.VignetteInner),
		glslFloat(field.VignetteWarpFreq), glslFloat(field.VignetteWarp),
		glslFloat(field.Gamma), glslFloat(field.Brightness), glslFloat(field.Alpha))

	return sb.String()
}
