package iopool

import "testing"

func TestBufferPool_GetReturnsCorrectSize(t *testing.T) {
	p := New(1024)
	buf := p.Get()
	if len(buf) != 1024 {
		t.Errorf("Get() len = %d, want 1024", len(buf))
	}
}

func TestBufferPool_PutThenGetReturnsCorrectSize(t *testing.T) {
	p := New(64)
	buf := p.Get()
	buf[0] = 0xFF
	p.Put(buf)

	got := p.Get()
	if len(got) != 64 {
		t.Errorf("Get() after Put() len = %d, want 64", len(got))
	}
}

func TestBufferPool_PutIgnoresWrongSizedBuffer(t *testing.T) {
	p := New(64)
	wrongSize := make([]byte, 128)
	p.Put(wrongSize) // must not panic, and must not corrupt the pool's size invariant

	got := p.Get()
	if len(got) != 64 {
		t.Errorf("Get() after Put() of a mismatched buffer len = %d, want 64", len(got))
	}
}
