package controllers

import (
	"context"

	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/lintang-b-s/travcost/pkg/http/usecases"
)

type CostService interface {
	StateCost(s usecases.StateParams) (da.Cost, error)
	MotionCost(from, to usecases.StateParams) (da.Cost, error)
	MotionCosts(ctx context.Context, from, to []usecases.StateParams) ([]engine.MotionResult, error)
	PathCost(encodedPath string, footprintClasses []int) (da.Cost, int, error)
	SetGrid(p usecases.GridParams) error
	ApplyCellUpdates(updates []grid.CellUpdate) error
}
