package wgpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// FromProvider extracts the hal device and queue from a gpucontext
// provider, so hosts built on the gogpu application framework can hand
// their existing GPU context to the stage without importing hal
// themselves.
//
// The provider's Device and Queue must be backed by gogpu/wgpu; other
// backends return ErrNoHALDevice.
func FromProvider(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if p == nil {
		return nil, nil, ErrNilProvider
	}
	device, ok := p.Device().(hal.Device)
	if !ok {
		return nil, nil, ErrNoHALDevice
	}
	queue, ok := p.Queue().(hal.Queue)
	if !ok {
		return nil, nil, ErrNoHALDevice
	}
	return device, queue, nil
}

// NewStagePipelineFromProvider builds a stage pipeline from a gpucontext
// provider. See FromProvider and NewStagePipeline.
func NewStagePipelineFromProvider(p gpucontext.DeviceProvider, cfg Config) (*StagePipeline, error) {
	device, queue, err := FromProvider(p)
	if err != nil {
		return nil, err
	}
	return NewStagePipeline(device, queue, cfg)
}
