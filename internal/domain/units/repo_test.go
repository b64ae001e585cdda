package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsequentEdges(t *testing.T) {
	t.Parallel()

	t.Run("historic default: single directed edge", func(t *testing.T) {
		edges := subsequentEdges(5, 31, 30, 12, false)
		require.Len(t, edges, 1)
		assert.Equal(t, Edge{ProductID: 5, FromUnitID: 31, ToUnitID: 30, Rate: 12}, edges[0])
	})

	t.Run("mirror flag adds the reciprocal edge", func(t *testing.T) {
		edges := subsequentEdges(5, 31, 30, 12, true)
		require.Len(t, edges, 2)
		assert.Equal(t, int64(30), edges[1].FromUnitID)
		assert.Equal(t, int64(31), edges[1].ToUnitID)
		assert.InDelta(t, 1, edges[0].Rate*edges[1].Rate, 1e-9)
	})
}
