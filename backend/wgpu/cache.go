package wgpu

import (
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vstage"
)

// PipelineCache builds and caches one StagePipeline per variant. Hosts
// that draw with several attribute configurations ask the cache instead
// of rebuilding pipelines per draw.
//
// PipelineCache is safe for concurrent use. Pipeline builds are
// synchronized: at most one build runs at a time, and each variant is
// built once.
type PipelineCache struct {
	mu sync.Mutex

	device    hal.Device
	queue     hal.Queue
	base      Config
	pipelines map[vstage.Variant]*StagePipeline
}

// NewPipelineCache creates an empty cache. base carries the shared
// pipeline configuration (target format, sample count, vertex buffer
// override); its Variant field is ignored in favor of the Get argument.
func NewPipelineCache(device hal.Device, queue hal.Queue, base Config) *PipelineCache {
	return &PipelineCache{
		device:    device,
		queue:     queue,
		base:      base,
		pipelines: make(map[vstage.Variant]*StagePipeline),
	}
}

// Get returns the pipeline for the variant, building it on first use.
func (c *PipelineCache) Get(v vstage.Variant) (*StagePipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pipelines[v]; ok {
		return p, nil
	}

	cfg := c.base
	cfg.Variant = v
	p, err := NewStagePipeline(c.device, c.queue, cfg)
	if err != nil {
		return nil, err
	}
	c.pipelines[v] = p
	return p, nil
}

// Len returns the number of built pipelines.
func (c *PipelineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pipelines)
}

// Destroy releases every cached pipeline. The cache is reusable
// afterwards; pipelines rebuild on demand.
func (c *PipelineCache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for v, p := range c.pipelines {
		p.Destroy()
		delete(c.pipelines, v)
	}
}
