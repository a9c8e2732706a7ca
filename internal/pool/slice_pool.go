package pool

import "sync"

// Slice pools for efficient reuse of typed slices.
// These pools back the sample grids that serialize adapters assemble when
// collecting a node tree into a dense region image.
var (
	sampleSlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	byteSlicePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
)

// GetSampleSlice retrieves and resizes a uint32 sample slice from the pool.
//
// The returned slice has the exact length specified by the size parameter
// and is zeroed; unwritten cells therefore already hold the "no data"
// sample. The caller must call the returned cleanup function (typically
// with defer) to return the slice to the pool.
func GetSampleSlice(size int) ([]uint32, func()) {
	ptr, _ := sampleSlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		clear(slice)
	}

	return slice, func() { sampleSlicePool.Put(ptr) }
}

// GetByteSlice retrieves and resizes a byte slice from the pool.
//
// Unlike GetSampleSlice the contents are not zeroed; callers are expected
// to overwrite the full length. The caller must call the returned cleanup
// function to return the slice to the pool.
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { byteSlicePool.Put(ptr) }
}
