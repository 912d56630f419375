package shader

import (
	"strings"
	"testing"

	"github.com/richinsley/gobackdrop/field"
)

func TestGLSLFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{1, "1.0"},
		{0.28, "0.28"},
		{-0.2, "-0.2"},
		{1e-4, "0.0001"},
		{120, "120.0"},
	}
	for _, tt := range tests {
		if got := glslFloat(tt.in); got != tt.want {
			t.Errorf("glslFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBackgroundFragmentDeclaresUniforms(t *testing.T) {
	src := BackgroundFragment()
	if !strings.HasPrefix(src, "#version 300 es") {
		t.Errorf("fragment source must target WebGL2, starts with %q", src[:20])
	}
	for _, u := range []string{"uniform float " + TimeUniform, "uniform vec2  " + ResolutionUniform} {
		if !strings.Contains(src, u) {
			t.Errorf("fragment source missing %q", u)
		}
	}
	if strings.Count(src, "void main()") != 1 {
		t.Errorf("expected exactly one main function")
	}
}

func TestBackgroundFragmentCarriesBallTable(t *testing.T) {
	src := BackgroundFragment()
	for i, b := range field.Balls {
		lit := "pow(" + glslFloat(b.Radius) + " * pulse"
		if !strings.Contains(src, lit) {
			t.Errorf("ball %d radius literal %q missing", i, lit)
		}
	}
	if n := strings.Count(src, "f += pow("); n != len(field.Balls) {
		t.Errorf("found %d field contributions, want %d", n, len(field.Balls))
	}
	if !strings.Contains(src, "vec4(color, 0.95)") {
		t.Errorf("alpha not fixed at 0.95")
	}
	if !strings.Contains(src, "clamp(n, vec2(-0.2), vec2(0.2))") {
		t.Errorf("noise clamp bound missing")
	}
	if !strings.Contains(src, "* 0.15;") {
		t.Errorf("noise scale missing")
	}
}

func TestBackgroundFragmentMatchesFieldTables(t *testing.T) {
	src := BackgroundFragment()
	for _, want := range []string{
		"float slowTime = t * 0.15;",
		"fract(sin(p) * 43758.5453123)",
		"return dot(n, vec3(70.0));",
		"vec2(1.2, 0.9), 0.3, 0.0)",
		"vec2(1.2, 0.9), 0.15, 6.0)",
		"snoise(vec2(slowTime * 0.9)), snoise(vec2(slowTime * 1.0))",
		"sin(t * 0.8 + dot(c, vec2(1.0)))",
		"p.x = 1.6 * sin(asin(clamp(p.x / 1.6, -1.0, 1.0)));",
		"p.y = 1.2 * sin(asin(clamp(p.y / 1.2, -1.0, 1.0)));",
		"uv.x *= uResolution.x / uResolution.y;",
		"palette(edge + t * 0.05)",
		"mix(vec3(0.02, 0.03, 0.05),",
		"vec3(0.2, 0.3, 0.4) * innerGlow * 0.3",
		"snoise(uv * 6.0 + t * 0.05) * 0.02 * edge",
		"smoothstep(1.8, 0.5, length(uv + snoise(uv * 1.5) * 0.05))",
		"cos(6.28318 * (vec3(0.25, 0.35, 0.45) * t + vec3(0.1, 0.2, 0.3)))",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("fragment source missing %q", want)
		}
	}
}

func TestVertexShaderDialects(t *testing.T) {
	if !strings.HasPrefix(GenerateVertexShader(false), "#version 410 core") {
		t.Errorf("desktop vertex stage must be GLSL 410")
	}
	if !strings.HasPrefix(GenerateVertexShader(true), "#version 300 es") {
		t.Errorf("GLES vertex stage must be ESSL 300")
	}
	if !strings.Contains(GetBlitFragmentShader(true), "precision mediump float") {
		t.Errorf("GLES blit stage needs a default precision")
	}
}
