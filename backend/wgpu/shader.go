package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vstage"
)

// compileVariantShader generates the WGSL module for a variant, verifies
// its attribute interface, compiles it to SPIR-V through naga, and wraps
// it in a hal shader module. Any failure here is a compilation-kind
// build error; nothing fails later at invocation time.
func compileVariantShader(device hal.Device, v vstage.Variant) (hal.ShaderModule, error) {
	source := vstage.ShaderSource(v) + vstage.FragmentStub(v)

	if err := vstage.VerifyShaderSource(v, source); err != nil {
		return nil, err
	}

	spirv, err := compileToSPIRV(source)
	if err != nil {
		return nil, fmt.Errorf("compile stage shader (variant %s): %w", v, err)
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vstage_" + v.String(),
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module (variant %s): %w", v, err)
	}

	vstage.Logger().Debug("vstage: compiled variant shader",
		"variant", v.String(), "spirvWords", len(spirv))
	return module, nil
}

// compileToSPIRV compiles WGSL source to SPIR-V uint32 words.
// SPIR-V is little-endian 32-bit words.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
