package game

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdgen_CodesAreUniqueWhileLive(t *testing.T) {
	t.Parallel()

	g := NewIdGen()
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		id := g.Generate()
		assert.False(t, seen[id], "duplicate live code %s", id)
		seen[id] = true

		code, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 1000)
	}
}

func TestIdgen_DisposedCodesCanBeReissued(t *testing.T) {
	t.Parallel()

	g := NewIdGen()
	issued := map[string]bool{}
	for i := 0; i < 200; i++ {
		issued[g.Generate()] = true
	}
	for id := range issued {
		g.Dispose(id)
	}
	// the pool is empty again, so these may collide with earlier codes;
	// only liveness matters
	for i := 0; i < 200; i++ {
		g.Generate()
	}
}
