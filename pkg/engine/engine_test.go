package engine

import (
	"context"
	"testing"

	"github.com/lintang-b-s/travcost/pkg/config"
	"github.com/lintang-b-s/travcost/pkg/costfunction"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T, modify func(c *config.Config)) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.EnvType = "xy"
	cfg.Speed = 2.0
	if modify != nil {
		modify(&cfg)
	}
	e, err := NewEngine(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	g, err := grid.NewUniformGrid(10, 10, 1.0, 0.5)
	require.NoError(t, err)
	e.SetGrid(g)
	return e
}

func TestNewEngineInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Speed = -2
	_, err := NewEngine(cfg, nil)
	assert.ErrorIs(t, err, costfunction.ErrInvalidConfig)
}

func TestEngineCosts(t *testing.T) {
	e := newEngine(t, nil)

	c, err := e.StateCost(da.NewRealVectorState(3, 3))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Value(), 1e-12)

	c, err = e.MotionCost(da.NewRealVectorState(0, 0), da.NewRealVectorState(0, 6))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, c.Value(), 1e-12)
}

func TestEngineBalancedObjective(t *testing.T) {
	e := newEngine(t, func(c *config.Config) {
		c.BalancePathLength = true
		c.PathLengthWeight = 2.0
		c.TravGridWeight = 1.0
	})

	// trav grid 1.0 * 6 + path length 2.0 * 6
	c, err := e.MotionCost(da.NewRealVectorState(0, 0), da.NewRealVectorState(0, 6))
	require.NoError(t, err)
	assert.InDelta(t, 18.0, c.Value(), 1e-12)
}

func TestEngineBalancedObjectiveKeepsInfeasibility(t *testing.T) {
	cfg := config.Default()
	cfg.BalancePathLength = true
	cfg.TravGridWeight = 0
	_, err := NewEngine(cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, costfunction.ErrInvalidConfig)

	e := newEngine(t, func(c *config.Config) {
		c.BalancePathLength = true
		c.TravGridWeight = 0.5
	})
	require.NoError(t, e.ApplyCellUpdates([]grid.CellUpdate{grid.NewCellUpdate(0, 6, 1, 1.0, 0)}))
	c, err := e.MotionCost(da.NewRealVectorState(0, 0), da.NewRealVectorState(0, 6))
	require.NoError(t, err)
	assert.False(t, c.IsFinite())
}

func TestEnginePathCost(t *testing.T) {
	e := newEngine(t, nil)

	path := []da.State{
		da.NewRealVectorState(0, 0),
		da.NewRealVectorState(3, 0),
		da.NewRealVectorState(3, 4),
	}
	c, err := e.PathCost(path)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, c.Value(), 1e-12)

	c, err = e.PathCost(path[:1])
	require.NoError(t, err)
	assert.Equal(t, da.IdentityCost(), c)

	_, err = e.PathCost(append(path, da.NewRealVectorState(3, 12)))
	assert.ErrorIs(t, err, costfunction.ErrOutOfBoundsState)

	t.Run("error after an infeasible motion", func(t *testing.T) {
		require.NoError(t, e.ApplyCellUpdates([]grid.CellUpdate{grid.NewCellUpdate(1, 0, 1, 1.0, 0)}))

		c, err := e.PathCost([]da.State{da.NewRealVectorState(0, 0), da.NewRealVectorState(1, 0)})
		require.NoError(t, err)
		assert.Equal(t, da.InfiniteCost(), c)

		_, err = e.PathCost([]da.State{
			da.NewRealVectorState(0, 0),
			da.NewRealVectorState(1, 0),
			da.NewRealVectorState(3, 42),
		})
		assert.ErrorIs(t, err, costfunction.ErrOutOfBoundsState)
	})
}

func TestEngineApplyCellUpdates(t *testing.T) {
	e := newEngine(t, nil)
	before := e.GetGrid()

	require.NoError(t, e.ApplyCellUpdates([]grid.CellUpdate{grid.NewCellUpdate(5, 5, 1, 1.0, 0)}))

	c, err := e.StateCost(da.NewRealVectorState(5.5, 5.5))
	require.NoError(t, err)
	assert.False(t, c.IsFinite())

	c, err = e.PathCost([]da.State{da.NewRealVectorState(4, 5), da.NewRealVectorState(5, 5)})
	require.NoError(t, err)
	assert.Equal(t, da.InfiniteCost(), c)

	// the previously bound grid is never modified
	assert.Equal(t, uint8(0), before.GetCellClass(5, 5))
	assert.NotSame(t, before, e.GetGrid())

	e.SetGrid(nil)
	err = e.ApplyCellUpdates([]grid.CellUpdate{grid.NewCellUpdate(1, 1, 0, 1.0, 1)})
	assert.ErrorIs(t, err, costfunction.ErrNoGridBound)
	_, err = e.StateCost(da.NewRealVectorState(1, 1))
	assert.ErrorIs(t, err, costfunction.ErrNoGridBound)
}

func TestEvaluateMotions(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.EvaluationWorkers = 3 })

	motions := make([]da.Motion, 0, 20)
	for i := 0; i < 9; i++ {
		motions = append(motions, da.NewMotion(da.NewRealVectorState(0, 0), da.NewRealVectorState(float64(i), 0)))
	}
	motions = append(motions, da.NewMotion(da.NewRealVectorState(0, 0), da.NewRealVectorState(-1, 0)))

	results := e.EvaluateMotions(context.Background(), motions)
	require.Len(t, results, len(motions))
	for i := 0; i < 9; i++ {
		require.NoError(t, results[i].Err)
		assert.InDelta(t, float64(i), results[i].Cost.Value(), 1e-12)
	}
	assert.ErrorIs(t, results[9].Err, costfunction.ErrOutOfBoundsState)

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		for _, r := range e.EvaluateMotions(ctx, motions) {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	})

	assert.Empty(t, e.EvaluateMotions(context.Background(), nil))
}
