// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package digest

// Context binds an algorithm to its state. Context is reusable:
// initializing it again with the same algorithm does not allocate.
type Context struct {
	alg   *Algorithm
	state State
	ready bool
}

func (c *Context) Init(alg *Algorithm) {
	if c.alg != alg || c.state == nil {
		c.alg = alg
		c.state = alg.New() // allocates only when algorithm changes
	}
	c.state.Init()
	c.ready = true
}

// Reset reinitializes with the same algorithm
func (c *Context) Reset() {
	if c.alg == nil {
		panic("digest context used before Init")
	}
	c.state.Init()
	c.ready = true
}

func (c *Context) Algorithm() *Algorithm { return c.alg }

func (c *Context) Size() int {
	if c.alg == nil {
		return 0
	}
	return c.alg.Size
}

func (c *Context) Update(data []byte) {
	if !c.ready {
		panic("digest context updated after Final or before Init")
	}
	c.state.Update(data)
}

// Final writes exactly Size bytes into out and returns them.
func (c *Context) Final(out []byte) []byte {
	if !c.ready {
		panic("digest context finalized twice or before Init")
	}
	if len(out) < c.alg.Size {
		panic("digest output shorter than digest size")
	}
	out = out[:c.alg.Size]
	c.state.Final(out)
	c.ready = false
	return out
}

func (c *Context) FinalSum() (result Sum) {
	result.SetZero(c.Size())
	c.Final(result.GetValue())
	return
}
