// pool.go - Only for builder buffer reuse
package emvqr

import "sync"

var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

func getBuffer() []byte {
	buf := bufferPool.Get().(*[]byte)
	return (*buf)[:0]
}

func putBuffer(buf []byte) {
	if buf != nil && cap(buf) <= 1024 { // Don't pool oversized buffers
		b := buf[:0]
		bufferPool.Put(&b)
	}
}
