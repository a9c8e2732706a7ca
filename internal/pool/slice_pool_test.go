package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSampleSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetSampleSlice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("returns zeroed slice", func(t *testing.T) {
		// Dirty a slice then return it to the pool
		slice1, cleanup1 := GetSampleSlice(50)
		for i := range slice1 {
			slice1[i] = 0xDEADBEEF
		}
		cleanup1()

		// A fresh slice of the same size must come back zeroed
		slice2, cleanup2 := GetSampleSlice(50)
		defer cleanup2()

		for i, v := range slice2 {
			require.Zero(t, v, "sample %d should be zero", i)
		}
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		// First allocation
		slice1, cleanup1 := GetSampleSlice(50)
		ptr1 := &slice1[0]
		cleanup1()

		// Second allocation should reuse the same underlying array
		slice2, cleanup2 := GetSampleSlice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		// First allocation with small size
		_, cleanup1 := GetSampleSlice(10)
		cleanup1()

		// Second allocation with larger size should allocate new slice
		slice2, cleanup2 := GetSampleSlice(1000)
		defer cleanup2()

		require.Equal(t, 1000, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("cleanup returns slice to pool", func(t *testing.T) {
		slice, cleanup := GetSampleSlice(100)
		require.NotNil(t, slice)

		// Should not panic
		cleanup()
	})
}

func TestGetByteSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetByteSlice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		// First allocation
		slice1, cleanup1 := GetByteSlice(50)
		ptr1 := &slice1[0]
		cleanup1()

		// Second allocation should reuse the same underlying array
		slice2, cleanup2 := GetByteSlice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		// First allocation with small size
		_, cleanup1 := GetByteSlice(10)
		cleanup1()

		// Second allocation with larger size should allocate new slice
		slice2, cleanup2 := GetByteSlice(1000)
		defer cleanup2()

		require.Equal(t, 1000, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("cleanup returns slice to pool", func(t *testing.T) {
		slice, cleanup := GetByteSlice(100)
		require.NotNil(t, slice)

		// Should not panic
		cleanup()
	})
}

func TestSlicePoolConcurrency(t *testing.T) {
	t.Run("concurrent access to sample pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetSampleSlice(50)
				defer cleanup()

				// Write to slice to ensure it's usable
				for j := range slice {
					slice[j] = uint32(j)
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})

	t.Run("concurrent access to byte pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetByteSlice(50)
				defer cleanup()

				// Write to slice to ensure it's usable
				for j := range slice {
					slice[j] = byte(j)
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})
}
