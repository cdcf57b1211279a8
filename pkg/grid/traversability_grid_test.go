package grid

import (
	"testing"

	"github.com/lintang-b-s/travcost/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraversabilityGrid(t *testing.T) {
	testCases := []struct {
		name    string
		sizeX   int
		sizeY   int
		scale   float64
		classes []TraversabilityClass
		wantErr error
	}{
		{name: "valid", sizeX: 10, sizeY: 5, scale: 0.1, classes: []TraversabilityClass{NewTraversabilityClass(1)}},
		{name: "empty grid", sizeX: 0, sizeY: 5, scale: 0.1, classes: []TraversabilityClass{NewTraversabilityClass(1)},
			wantErr: ErrInvalidGrid},
		{name: "zero scale", sizeX: 3, sizeY: 3, scale: 0, classes: []TraversabilityClass{NewTraversabilityClass(1)},
			wantErr: ErrInvalidGrid},
		{name: "no classes", sizeX: 3, sizeY: 3, scale: 1, wantErr: ErrInvalidGrid},
		{name: "cell count overflows int", sizeX: 1 << 32, sizeY: 1 << 32, scale: 1,
			classes: []TraversabilityClass{NewTraversabilityClass(1)}, wantErr: ErrInvalidGrid},
		{name: "too many cells", sizeX: 100000, sizeY: 100000, scale: 1,
			classes: []TraversabilityClass{NewTraversabilityClass(1)}, wantErr: ErrInvalidGrid},
		{name: "largest grid", sizeX: 8192, sizeY: 8192, scale: 1,
			classes: []TraversabilityClass{NewTraversabilityClass(1)}},
		{name: "drivability above one", sizeX: 3, sizeY: 3, scale: 1,
			classes: []TraversabilityClass{NewTraversabilityClass(1.5)}, wantErr: ErrInvalidDrivability},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTraversabilityGrid(tt.sizeX, tt.sizeY, tt.scale, tt.scale, tt.classes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sizeX, g.GetCellSizeX())
			assert.Equal(t, tt.sizeY, g.GetCellSizeY())
			assert.Equal(t, tt.scale, g.GetScaleX())
		})
	}
}

func TestCellLookup(t *testing.T) {
	g, err := NewTraversabilityGrid(4, 3, 1, 1, []TraversabilityClass{
		NewTraversabilityClass(0),
		NewTraversabilityClass(0.5),
	})
	require.NoError(t, err)

	require.NoError(t, g.SetCellClass(3, 2, 1))
	assert.Equal(t, uint8(1), g.GetCellClass(3, 2))
	assert.Equal(t, uint8(0), g.GetCellClass(2, 3-1))
	assert.Equal(t, 0.5, g.GetDrivability(1))
	assert.Equal(t, 0.0, g.GetDrivability(7))

	assert.ErrorIs(t, g.SetCellClass(4, 0, 1), ErrCellOutOfGrid)
	assert.ErrorIs(t, g.SetCellClass(0, 0, 2), ErrUnknownClass)
	assert.False(t, g.InGrid(-1, 0))
	assert.True(t, g.InGrid(0, 2))
}

func TestWithCellUpdates(t *testing.T) {
	g, err := NewUniformGrid(5, 5, 1, 1)
	require.NoError(t, err)

	updated, err := g.WithCellUpdates([]CellUpdate{
		NewCellUpdate(1, 1, 1, 0.9, 0.25),
		NewCellUpdate(2, 1, 1, 0.9, 0.25),
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(1), updated.GetCellClass(1, 1))
	assert.Equal(t, 0.25, updated.GetDrivability(updated.GetCellClass(2, 1)))
	assert.Equal(t, 2, updated.GetNumClasses())

	assert.InDelta(t, 0.9, updated.GetCellProbability(1, 1), 1e-6)
	assert.Equal(t, 1.0, updated.GetCellProbability(0, 0))

	// the original grid is untouched
	assert.Equal(t, uint8(0), g.GetCellClass(1, 1))
	assert.Equal(t, 1, g.GetNumClasses())
	assert.Equal(t, 1.0, g.GetCellProbability(1, 1))

	again, err := updated.WithCellUpdates([]CellUpdate{NewCellUpdate(1, 1, 0, 0.5, 1)})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, again.GetCellProbability(1, 1), 1e-6)
	assert.InDelta(t, 0.9, again.GetCellProbability(2, 1), 1e-6)
	assert.InDelta(t, 0.9, updated.GetCellProbability(1, 1), 1e-6)

	t.Run("all or nothing", func(t *testing.T) {
		_, err := g.WithCellUpdates([]CellUpdate{
			NewCellUpdate(0, 0, 1, 1, 0.5),
			NewCellUpdate(9, 9, 1, 1, 0.5),
		})
		assert.ErrorIs(t, err, ErrCellOutOfGrid)
		assert.Equal(t, uint8(0), g.GetCellClass(0, 0))
	})

	t.Run("class gap", func(t *testing.T) {
		_, err := g.WithCellUpdates([]CellUpdate{NewCellUpdate(0, 0, 5, 1, 0.5)})
		assert.ErrorIs(t, err, ErrUnknownClass)
	})

	t.Run("invalid probability", func(t *testing.T) {
		_, err := g.WithCellUpdates([]CellUpdate{NewCellUpdate(0, 0, 0, 2, 0.5)})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})
}
