package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphRate(t *testing.T) {
	t.Parallel()

	// crate(1) -> bottle(2): 24; pack(3) -> bottle(2): 6, одно направление.
	edges := []Edge{
		{ProductID: 1, FromUnitID: 1, ToUnitID: 2, Rate: 24},
		{ProductID: 1, FromUnitID: 2, ToUnitID: 1, Rate: 1.0 / 24},
		{ProductID: 1, FromUnitID: 3, ToUnitID: 2, Rate: 6},
	}
	g := BuildGraph(edges)

	tests := []struct {
		name     string
		from, to int64
		want     float64
		ok       bool
	}{
		{name: "direct", from: 1, to: 2, want: 24, ok: true},
		{name: "stored reciprocal", from: 2, to: 1, want: 1.0 / 24, ok: true},
		{name: "derived reciprocal of one-way edge", from: 2, to: 3, want: 1.0 / 6, ok: true},
		{name: "transitive via bottle", from: 1, to: 3, want: 4, ok: true},
		{name: "self", from: 2, to: 2, want: 1, ok: true},
		{name: "unknown unit", from: 1, to: 99, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Rate(tt.from, tt.to)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestGraphReciprocalInvariant(t *testing.T) {
	t.Parallel()

	// rate(A->B) * rate(B->A) == 1 для любой связанной пары.
	g := BuildGraph([]Edge{
		{ProductID: 7, FromUnitID: 10, ToUnitID: 11, Rate: 12},
		{ProductID: 7, FromUnitID: 11, ToUnitID: 10, Rate: 1.0 / 12},
		{ProductID: 7, FromUnitID: 12, ToUnitID: 11, Rate: 0.5},
	})
	ids := []int64{10, 11, 12}
	for _, a := range ids {
		for _, b := range ids {
			ab, ok := g.Rate(a, b)
			require.True(t, ok)
			ba, ok := g.Rate(b, a)
			require.True(t, ok)
			assert.InDelta(t, 1, ab*ba, 1e-9, "pair %d<->%d", a, b)
		}
	}
}

func TestGraphConnected(t *testing.T) {
	t.Parallel()

	g := BuildGraph([]Edge{
		{FromUnitID: 1, ToUnitID: 2, Rate: 24},
		{FromUnitID: 5, ToUnitID: 6, Rate: 10},
	})
	assert.True(t, g.Connected([]int64{1, 2}))
	assert.True(t, g.Connected([]int64{6}))
	assert.False(t, g.Connected([]int64{1, 2, 5}))
}
