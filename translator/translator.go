package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", initErr)
	}
	return translator, nil
}

// Fragment is a translated fragment stage with its uniform name mapping.
type Fragment struct {
	Code     string
	uniforms map[string]string
}

// MappedName returns the name the translator gave to a declared uniform,
// and false if the uniform was optimised out.
func (f *Fragment) MappedName(name string) (string, bool) {
	mapped, ok := f.uniforms[name]
	return mapped, ok
}

// TranslateFragment converts a WebGL2 fragment stage to desktop GLSL 4.10 or,
// when isGLES is set, to ESSL for EGL contexts.
func TranslateFragment(source string, isGLES bool) (*Fragment, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	fs, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	f := &Fragment{Code: fs.Code, uniforms: make(map[string]string, len(fs.Variables))}
	for name, v := range fs.Variables {
		f.uniforms[name] = v.MappedName
	}
	return f, nil
}
