package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded glyph quad shader source.
//
//go:embed shaders/glyph_quad.wgsl
var glyphQuadShaderSource string

// QuadShaderSource returns the WGSL source of the glyph quad shader.
func QuadShaderSource() string {
	return glyphQuadShaderSource
}

// CompileQuadShader compiles the glyph quad shader to SPIR-V words, for
// backends that take SPIR-V instead of WGSL.
func CompileQuadShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(glyphQuadShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile glyph_quad shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
