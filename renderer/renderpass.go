package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gobackdrop/shader"
	xlate "github.com/richinsley/gobackdrop/translator"
)

// RenderPass is the compiled background program and its uniform locations.
type RenderPass struct {
	ShaderProgram uint32
	resolutionLoc int32
	timeLoc       int32
}

func newRenderPass(isGLES bool) (*RenderPass, error) {
	fs, err := xlate.TranslateFragment(shader.BackgroundFragment(), isGLES)
	if err != nil {
		return nil, err
	}

	program, err := newProgram(shader.GenerateVertexShader(isGLES), fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	pass := &RenderPass{ShaderProgram: program}
	gl.UseProgram(program)
	pass.timeLoc = uniformLocation(fs, program, shader.TimeUniform)
	pass.resolutionLoc = uniformLocation(fs, program, shader.ResolutionUniform)
	return pass, nil
}

func uniformLocation(fs *xlate.Fragment, program uint32, name string) int32 {
	mapped, ok := fs.MappedName(name)
	if !ok {
		return -1
	}
	return gl.GetUniformLocation(program, gl.Str(mapped+"\x00"))
}

func (p *RenderPass) updateUniforms(u Uniforms) {
	if p.resolutionLoc != -1 {
		gl.Uniform2f(p.resolutionLoc, u.Resolution[0], u.Resolution[1])
	}
	if p.timeLoc != -1 {
		gl.Uniform1f(p.timeLoc, u.ElapsedSeconds)
	}
}

func (p *RenderPass) Destroy() {
	if p == nil || p.ShaderProgram == 0 {
		return
	}
	gl.DeleteProgram(p.ShaderProgram)
	p.ShaderProgram = 0
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
