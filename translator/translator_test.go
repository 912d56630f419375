package translator

import (
	"strings"
	"testing"

	"github.com/richinsley/gobackdrop/shader"
)

func TestTranslateBackground(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}

	for _, isGLES := range []bool{false, true} {
		fs, err := TranslateFragment(shader.BackgroundFragment(), isGLES)
		if err != nil {
			t.Fatalf("TranslateFragment(gles=%v): %v", isGLES, err)
		}
		if !strings.Contains(fs.Code, "main") {
			t.Errorf("gles=%v: translated code has no entry point", isGLES)
		}
		for _, u := range []string{shader.TimeUniform, shader.ResolutionUniform} {
			if name, ok := fs.MappedName(u); !ok || name == "" {
				t.Errorf("gles=%v: uniform %s not reported", isGLES, u)
			}
		}
	}
}

func TestTranslateRejectsBrokenSource(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}
	if _, err := TranslateFragment("#version 300 es\nvoid main() { undefined_call(); }", false); err == nil {
		t.Error("expected an error for a call to an undeclared function")
	}
}
