package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lintang-b-s/travcost/pkg/concurrent"
	"github.com/lintang-b-s/travcost/pkg/config"
	"github.com/lintang-b-s/travcost/pkg/costfunction"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/lintang-b-s/travcost/pkg/objective"
	"github.com/lintang-b-s/travcost/pkg/statespace"
	"github.com/lintang-b-s/travcost/pkg/util"
	"go.uber.org/zap"
)

// Engine. cost evaluation entry point for planners. grid writers (SetGrid, ApplyCellUpdates) are serialized,
// readers never block.
type Engine struct {
	config    config.Config
	travGrid  *costfunction.TravGridObjective
	objective objective.Objective

	gridMu sync.Mutex
	grid   atomic.Pointer[grid.TraversabilityGrid]

	logger *zap.Logger
}

func NewEngine(cfg config.Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("Starting traversability cost engine...", zap.String("env", cfg.EnvType),
		zap.Float64("speed", cfg.Speed), zap.Int("numFootprintClasses", cfg.NumFootprintClasses))

	space, err := statespace.NewSpace(cfg.GetEnvType(), cfg.LongestValidSegment, cfg.NumFootprintClasses)
	if err != nil {
		return nil, err
	}
	travGridConfig, err := cfg.TravGridConfig()
	if err != nil {
		return nil, err
	}
	travGrid, err := costfunction.NewTravGridObjective(space, travGridConfig, logger.Named("costfunction"))
	if err != nil {
		return nil, err
	}

	var obj objective.Objective = travGrid
	if cfg.BalancePathLength {
		logger.Info("Balancing traversability cost with path length",
			zap.Float64("travGridWeight", cfg.TravGridWeight), zap.Float64("pathLengthWeight", cfg.PathLengthWeight))
		multi := objective.NewMulti()
		if err := multi.AddObjective(travGrid, cfg.TravGridWeight); err != nil {
			return nil, err
		}
		if err := multi.AddObjective(objective.NewPathLength(space), cfg.PathLengthWeight); err != nil {
			return nil, err
		}
		obj = multi
	}

	return &Engine{
		config:    cfg,
		travGrid:  travGrid,
		objective: obj,
		logger:    logger,
	}, nil
}

func (e *Engine) GetConfig() config.Config {
	return e.config
}

// GetGrid. currently bound grid, nil if none. must not be modified.
func (e *Engine) GetGrid() *grid.TraversabilityGrid {
	return e.grid.Load()
}

// SetGrid binds g for all following evaluations. g must not be modified afterwards.
func (e *Engine) SetGrid(g *grid.TraversabilityGrid) {
	e.gridMu.Lock()
	defer e.gridMu.Unlock()
	e.setGrid(g)
}

func (e *Engine) setGrid(g *grid.TraversabilityGrid) {
	e.grid.Store(g)
	if g == nil {
		e.travGrid.SetGrid(nil)
		e.logger.Info("Traversability grid unbound")
		return
	}
	e.travGrid.SetGrid(g)
	e.logger.Info("Traversability grid bound", zap.Int("cellSizeX", g.GetCellSizeX()),
		zap.Int("cellSizeY", g.GetCellSizeY()), zap.Float64("scaleX", g.GetScaleX()),
		zap.Float64("scaleY", g.GetScaleY()))
}

// ApplyCellUpdates. partial map update without rebuilding the grid. the updated grid is a copy, evaluations
// running concurrently keep using the previous grid.
func (e *Engine) ApplyCellUpdates(updates []grid.CellUpdate) error {
	e.gridMu.Lock()
	defer e.gridMu.Unlock()

	current := e.grid.Load()
	if current == nil {
		return util.WrapErrorf(costfunction.ErrNoGridBound, util.ErrConflict, "can not apply %d cell updates", len(updates))
	}
	updated, err := current.WithCellUpdates(updates)
	if err != nil {
		return err
	}
	e.logger.Info("Applying partial map update", zap.Int("cells", len(updates)))
	e.setGrid(updated)
	return nil
}

func (e *Engine) StateCost(s da.State) (da.Cost, error) {
	return e.objective.StateCost(s)
}

func (e *Engine) MotionCost(s1, s2 da.State) (da.Cost, error) {
	return e.objective.MotionCost(s1, s2)
}

// PathCost. sum of the motion costs along consecutive states.
func (e *Engine) PathCost(states []da.State) (da.Cost, error) {
	total := da.IdentityCost()
	infeasible := false
	if len(states) == 1 {
		if _, err := e.objective.StateCost(states[0]); err != nil {
			return 0, err
		}
	}
	for i := 1; i < len(states); i++ {
		c, err := e.objective.MotionCost(states[i-1], states[i])
		if err != nil {
			return 0, util.WrapErrorf(err, util.ErrorCode(err), "motion %d of path", i-1)
		}
		// later motions are still evaluated, their errors win over infeasibility
		if !c.IsFinite() {
			infeasible = true
			continue
		}
		total = total.Add(c)
	}
	if infeasible {
		return da.InfiniteCost(), nil
	}
	return total, nil
}

type MotionResult struct {
	Cost da.Cost
	Err  error
}

// EvaluateMotions evaluates motions concurrently on config.EvaluationWorkers workers. results are in
// the order of motions. motions not yet evaluated when ctx is done get ctx.Err().
func (e *Engine) EvaluateMotions(ctx context.Context, motions []da.Motion) []MotionResult {
	if len(motions) == 0 {
		return []MotionResult{}
	}

	workers := util.MinInt(e.config.EvaluationWorkers, len(motions))
	pool := concurrent.NewWorkerPool[da.Motion, MotionResult](workers, len(motions))
	pool.Start(ctx, func(ctx context.Context, m da.Motion) MotionResult {
		if util.StopConcurrentOperation(ctx) {
			return MotionResult{Err: ctx.Err()}
		}
		c, err := e.objective.MotionCost(m.From, m.To)
		return MotionResult{Cost: c, Err: err}
	})

	for _, m := range motions {
		pool.AddJob(m)
	}
	pool.Close()
	pool.Wait()
	return pool.CollectResults()
}
