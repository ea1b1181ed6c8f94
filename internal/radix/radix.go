// Package radix implements a stable least-significant-digit radix sort over
// uint32 keys. The keys are never moved; the result is an indirection array
// mapping sorted position to original index.
package radix

const (
	digitBits = 8
	buckets   = 1 << digitBits
	passes    = 32 / digitBits
)

// Sorter owns the scratch buffers reused between sorts. The zero value is
// ready to use. A Sorter is not safe for concurrent use.
type Sorter struct {
	indirection []int
	scratch     []int
}

// Sort returns the indirection for keys. The slice is owned by the Sorter and
// is overwritten by the next call.
func (s *Sorter) Sort(keys []uint32) []int {
	n := len(keys)
	s.indirection = grow(s.indirection, n)
	s.scratch = grow(s.scratch, n)
	SortWithIndirection(keys, s.indirection, s.scratch)
	return s.indirection
}

// SortWithIndirection fills indirection[:len(keys)] so that
// keys[indirection[0]] <= keys[indirection[1]] <= ... with ties kept in
// original order. scratch is used when it has room for len(keys) entries and
// is allocated otherwise.
func SortWithIndirection(keys []uint32, indirection []int, scratch []int) {
	n := len(keys)
	if len(indirection) < n {
		panic("radix: indirection shorter than keys")
	}

	src := indirection[:n]
	for i := range src {
		src[i] = i
	}
	if n < 2 {
		return
	}

	if cap(scratch) < n {
		scratch = make([]int, n)
	}
	dst := scratch[:n]

	var counts [buckets]int
	for pass := 0; pass < passes; pass++ {
		shift := uint(pass * digitBits)

		clear(counts[:])
		for _, idx := range src {
			counts[(keys[idx]>>shift)&(buckets-1)]++
		}

		// every key shares this digit
		if counts[(keys[src[0]]>>shift)&(buckets-1)] == n {
			continue
		}

		sum := 0
		for b := range counts {
			c := counts[b]
			counts[b] = sum
			sum += c
		}

		for _, idx := range src {
			b := (keys[idx] >> shift) & (buckets - 1)
			dst[counts[b]] = idx
			counts[b]++
		}
		src, dst = dst, src
	}

	if &src[0] != &indirection[0] {
		copy(indirection[:n], src)
	}
}

func grow(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}
