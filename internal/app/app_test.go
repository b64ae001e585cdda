package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/config"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
)

func TestNewWiresEverything(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	a := New(nil, db.Capabilities{}, cfg, slog.Default())

	require.NotNil(t, a)
	assert.NotNil(t, a.Products)
	assert.NotNil(t, a.Units)
	assert.NotNil(t, a.Prices)
	assert.NotNil(t, a.Validator)
	assert.NotNil(t, a.Inventory)
	assert.NotNil(t, a.Ledger)
	assert.NotNil(t, a.Dedup)
	assert.NotNil(t, a.Repair)
}

func TestNewPlumbsMirrorFlag(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	assert.False(t, New(nil, db.Capabilities{}, cfg, slog.Default()).Units.MirrorSubsequentEdges())

	cfg.Units.MirrorSubsequentEdges = true
	assert.True(t, New(nil, db.Capabilities{}, cfg, slog.Default()).Units.MirrorSubsequentEdges())
}
