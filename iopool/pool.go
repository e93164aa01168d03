// Package iopool recycles the fixed-size read buffers the FIX gateway uses
// for each TCP connection, so a busy gateway doesn't churn the allocator on
// every socket read.
package iopool

import "sync"

// BufferPool hands out byte slices of a fixed capacity and reclaims them
// for reuse once the caller is done with them.
type BufferPool struct {
	pool sync.Pool
	size int
}

// New returns a BufferPool whose buffers have the given capacity.
func New(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return make([]byte, size)
			},
		},
		size: size,
	}
}

// Get returns a buffer of this pool's configured size, reused from a prior
// Put when available.
func (p *BufferPool) Get() []byte {
	return p.pool.Get().([]byte)
}

// Put returns buf to the pool. buf must have been obtained from Get and
// must not be used again by the caller afterward.
func (p *BufferPool) Put(buf []byte) {
	if cap(buf) != p.size {
		return
	}
	p.pool.Put(buf[:p.size])
}
