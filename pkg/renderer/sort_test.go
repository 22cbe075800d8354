package renderer

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByMaterial_OrdersAndKeepsPairs(t *testing.T) {
	random := rand.New(rand.NewPCG(3, 4))
	paths, isects := randomPopulation(random, 500)

	pairs := make(map[int]int, len(paths))
	for i := range paths {
		pairs[paths[i].PixelIndex] = isects[i].MaterialID
	}

	SortByMaterial(paths, isects, 400)

	for i := 0; i+1 < 400; i++ {
		assert.LessOrEqual(t, isects[i].MaterialID, isects[i+1].MaterialID)
	}
	for i := range paths {
		assert.Equal(t, pairs[paths[i].PixelIndex], isects[i].MaterialID)
		assert.Equal(t, float64(paths[i].PixelIndex), isects[i].T)
	}
	for i := 400; i < 500; i++ {
		assert.Equal(t, i, paths[i].PixelIndex, "lanes past n stay put")
	}
}

func TestSortByMaterial_MissesSortFirst(t *testing.T) {
	random := rand.New(rand.NewPCG(5, 6))
	paths, isects := randomPopulation(random, 10)
	isects[7].MaterialID = -1

	SortByMaterial(paths, isects, len(paths))

	assert.Equal(t, -1, isects[0].MaterialID)
	assert.Equal(t, 7, paths[0].PixelIndex)
}
