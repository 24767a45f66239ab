// Package process carries one audio block and the parameter values the
// processor reads while rendering it.
package process

import (
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

// Context is reused for every block; none of its methods allocate.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	maxBlock int
	params   *param.Registry
}

// NewContext creates a context for blocks of up to maxBlockSize frames.
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	return &Context{maxBlock: maxBlockSize, params: params}
}

// MaxBlockSize returns the largest block the host will hand over.
func (c *Context) MaxBlockSize() int {
	return c.maxBlock
}

// Normalized returns the 0-1 value of a parameter, or 0 if id is unknown.
func (c *Context) Normalized(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the plain value of a parameter, or 0 if id is unknown.
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples is the frame count of the current block.
func (c *Context) NumSamples() int {
	for _, bufs := range [2][][]float32{c.Input, c.Output} {
		if len(bufs) > 0 {
			return len(bufs[0])
		}
	}
	return 0
}

// Block points Input and Output at the first n frames of the given channel
// buffers. The Input and Output slices themselves are reused.
func (c *Context) Block(in, out [][]float32, n int) {
	c.Input = c.Input[:0]
	c.Output = c.Output[:0]
	for _, buf := range in {
		c.Input = append(c.Input, buf[:n])
	}
	for _, buf := range out {
		c.Output = append(c.Output, buf[:n])
	}
}

func (c *Context) channels() int {
	return min(len(c.Input), len(c.Output))
}

// ProcessStereo calls fn for each of the first two channel pairs.
func (c *Context) ProcessStereo(fn func(ch int, input, output []float32)) {
	for ch := range min(c.channels(), 2) {
		fn(ch, c.Input[ch], c.Output[ch])
	}
}

// PassThrough copies input to output.
func (c *Context) PassThrough() {
	for ch := range c.channels() {
		copy(c.Output[ch], c.Input[ch])
	}
}
