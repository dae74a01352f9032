package wgpu

import "errors"

// Common errors returned by pipeline construction and upload.
var (
	// ErrNilDevice is returned when a nil hal.Device is passed.
	ErrNilDevice = errors.New("vstage/wgpu: nil device")

	// ErrNilQueue is returned when a nil hal.Queue is passed.
	ErrNilQueue = errors.New("vstage/wgpu: nil queue")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("vstage/wgpu: nil DeviceProvider")

	// ErrNoHALDevice is returned when a gpucontext provider's device or
	// queue does not expose the gogpu/wgpu hal interfaces.
	ErrNoHALDevice = errors.New("vstage/wgpu: provider device is not a hal.Device")

	// ErrInvalidVariant is returned when a pipeline is requested for a
	// variant with undefined flag bits.
	ErrInvalidVariant = errors.New("vstage/wgpu: invalid variant")

	// ErrLayoutMismatch is returned when a host-supplied uniform block
	// does not match the TransformBlock layout size. Field order inside a
	// correctly sized block cannot be detected here; it is a contract the
	// host must uphold.
	ErrLayoutMismatch = errors.New("vstage/wgpu: uniform block layout mismatch")

	// ErrDestroyed is returned when operations are attempted on a
	// destroyed pipeline.
	ErrDestroyed = errors.New("vstage/wgpu: pipeline destroyed")
)
