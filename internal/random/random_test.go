package random_test

import (
	"testing"

	"github.com/plus3/skirmish/internal/random"
	"github.com/stretchr/testify/assert"
)

func TestStableHash32(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, random.StableHash32(1, 2), random.StableHash32(1, 2))
	})

	t.Run("order sensitive", func(t *testing.T) {
		assert.NotEqual(t, random.StableHash32(1, 2), random.StableHash32(2, 1))
	})

	t.Run("spreads nearby inputs", func(t *testing.T) {
		seen := make(map[uint32]struct{})
		for i := uint32(0); i < 1000; i++ {
			seen[random.StableHash32(7, i)] = struct{}{}
		}
		assert.Len(t, seen, 1000)
	})
}

func TestGenerator(t *testing.T) {
	t.Run("advances counter", func(t *testing.T) {
		g := random.New(42)
		var counter uint32
		g.Next(&counter)
		g.Random(&counter, 10)
		g.Random(&counter, 0)
		assert.Equal(t, uint32(3), counter)
	})

	t.Run("reproducible for seed and counter", func(t *testing.T) {
		var a, b uint32
		ga, gb := random.New(99), random.New(99)
		for i := 0; i < 100; i++ {
			assert.Equal(t, ga.Random(&a, 1000), gb.Random(&b, 1000))
		}
	})

	t.Run("bounds", func(t *testing.T) {
		g := random.New(5)
		var counter uint32
		for i := 0; i < 10000; i++ {
			v := g.Random(&counter, 7)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 7)

			w := g.Between(&counter, -3, 3)
			assert.GreaterOrEqual(t, w, -3)
			assert.LessOrEqual(t, w, 3)
		}
		assert.Equal(t, 0, g.Random(&counter, -1))
		assert.Equal(t, 4, g.Between(&counter, 4, 2))
	})

	t.Run("covers range", func(t *testing.T) {
		g := random.New(11)
		var counter uint32
		hits := make([]int, 5)
		for i := 0; i < 5000; i++ {
			hits[g.Random(&counter, 5)]++
		}
		for i, n := range hits {
			assert.Greater(t, n, 0, "value %d never drawn", i)
		}
	})
}

func TestSource(t *testing.T) {
	var src random.Source
	var c1, c2 uint32
	assert.Equal(t, random.New(3).Random(&c1, 50), src.NextIndex(3, &c2, 50))
	assert.Equal(t, c1, c2)
}

func BenchmarkNextIndex(b *testing.B) {
	var src random.Source
	var counter uint32
	for i := 0; i < b.N; i++ {
		src.NextIndex(1, &counter, 1000)
	}
}
