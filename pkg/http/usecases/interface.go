package usecases

import (
	"context"

	"github.com/lintang-b-s/travcost/pkg/config"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
)

type CostEngine interface {
	GetConfig() config.Config
	StateCost(s da.State) (da.Cost, error)
	MotionCost(s1, s2 da.State) (da.Cost, error)
	PathCost(states []da.State) (da.Cost, error)
	EvaluateMotions(ctx context.Context, motions []da.Motion) []engine.MotionResult
	SetGrid(g *grid.TraversabilityGrid)
	ApplyCellUpdates(updates []grid.CellUpdate) error
}
