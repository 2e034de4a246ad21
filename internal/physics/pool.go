package physics

import "sync"

// bufPool recycles the temperature snapshot used by Diffuse so a long run
// does not allocate one grid-sized slice per tick.
var bufPool = sync.Pool{
	New: func() any {
		return new([]float64)
	},
}

func getBuf() *[]float64 { return bufPool.Get().(*[]float64) }

func putBuf(b *[]float64) {
	clear(*b)
	bufPool.Put(b)
}
