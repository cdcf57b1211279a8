package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/travcost/pkg"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/lintang-b-s/travcost/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrGridCells   = errors.New("number of cells does not match the grid size")
)

// StateParams. state as sent by an out-of-process planner. Yaw is ignored for xy, FootprintClass is only
// used by the footprint environment.
type StateParams struct {
	X              float64
	Y              float64
	Yaw            float64
	FootprintClass int
}

type GridParams struct {
	CellSizeX   int
	CellSizeY   int
	Scale       float64
	Drivability []float64
	Cells       []int
}

type CostService struct {
	log    *zap.Logger
	engine CostEngine
}

func NewCostService(log *zap.Logger, engine CostEngine) *CostService {
	return &CostService{
		log:    log,
		engine: engine,
	}
}

func (cs *CostService) toState(p StateParams) da.State {
	switch cs.engine.GetConfig().GetEnvType() {
	case pkg.ENV_XY:
		return da.NewRealVectorState(p.X, p.Y)
	case pkg.ENV_FOOTPRINT:
		return da.NewFootprintState(p.X, p.Y, p.Yaw, p.FootprintClass)
	default:
		return da.NewSE2State(p.X, p.Y, p.Yaw)
	}
}

func (cs *CostService) StateCost(s StateParams) (da.Cost, error) {
	return cs.engine.StateCost(cs.toState(s))
}

func (cs *CostService) MotionCost(from, to StateParams) (da.Cost, error) {
	return cs.engine.MotionCost(cs.toState(from), cs.toState(to))
}

func (cs *CostService) MotionCosts(ctx context.Context, from, to []StateParams) ([]engine.MotionResult, error) {
	if len(from) != len(to) {
		return nil, util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput,
			"%d motion origins but %d motion destinations", len(from), len(to))
	}
	motions := make([]da.Motion, len(from))
	for i := range from {
		motions[i] = da.NewMotion(cs.toState(from[i]), cs.toState(to[i]))
	}
	return cs.engine.EvaluateMotions(ctx, motions), nil
}

// PathCost. cost of a path given as an encoded polyline of grid coordinates.
func (cs *CostService) PathCost(encodedPath string, footprintClasses []int) (da.Cost, int, error) {
	states, err := cs.decodePath(encodedPath, footprintClasses)
	if err != nil {
		return 0, 0, err
	}
	cost, err := cs.engine.PathCost(states)
	return cost, len(states), err
}

func (cs *CostService) SetGrid(p GridParams) error {
	classes := make([]grid.TraversabilityClass, len(p.Drivability))
	for i, d := range p.Drivability {
		classes[i] = grid.NewTraversabilityClass(d)
	}
	g, err := grid.NewTraversabilityGrid(p.CellSizeX, p.CellSizeY, p.Scale, p.Scale, classes)
	if err != nil {
		return err
	}

	if len(p.Cells) != 0 {
		if len(p.Cells) != p.CellSizeX*p.CellSizeY {
			return util.WrapErrorf(ErrGridCells, util.ErrBadParamInput, "got %d cells for a %dx%d grid",
				len(p.Cells), p.CellSizeX, p.CellSizeY)
		}
		for i, class := range p.Cells {
			if class < 0 || class >= len(classes) {
				return util.WrapErrorf(grid.ErrUnknownClass, util.ErrBadParamInput, "cell %d has class %d", i, class)
			}
			if err := g.SetCellClass(i%p.CellSizeX, i/p.CellSizeX, uint8(class)); err != nil {
				return err
			}
		}
	}

	cs.log.Info("replacing traversability grid", zap.Int("cellSizeX", p.CellSizeX), zap.Int("cellSizeY", p.CellSizeY))
	cs.engine.SetGrid(g)
	return nil
}

func (cs *CostService) ApplyCellUpdates(updates []grid.CellUpdate) error {
	return cs.engine.ApplyCellUpdates(updates)
}
