package costfunction

import (
	"sync/atomic"

	"github.com/lintang-b-s/travcost/pkg"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/objective"
	"github.com/lintang-b-s/travcost/pkg/statespace"
	"github.com/lintang-b-s/travcost/pkg/util"
	"go.uber.org/zap"
)

type gridBinding struct {
	m TraversabilityMap
}

// TravGridObjective. traversal time of states and motions over a traversability grid.
//
// StateCost and MotionCost are safe for concurrent use. SetGrid may run concurrently with them: every
// evaluation reads the binding once, so it sees either the old or the new grid but never a mix.
// a bound TraversabilityMap itself must not be mutated.
type TravGridObjective struct {
	space  statespace.Space
	config TravGridConfig
	grid   atomic.Pointer[gridBinding]
	log    *zap.Logger
}

func NewTravGridObjective(space statespace.Space, config TravGridConfig, log *zap.Logger) (*TravGridObjective, error) {
	if config.Env == nil {
		return nil, util.WrapErrorf(ErrUnsupportedVariant, util.ErrInternalServerError, "no environment configured")
	}
	if space == nil {
		return nil, util.WrapErrorf(ErrInvalidConfig, util.ErrInternalServerError, "no state space configured")
	}
	if !(config.Speed >= 0) {
		return nil, util.WrapErrorf(ErrInvalidConfig, util.ErrInternalServerError, "speed %v must be >= 0", config.Speed)
	}
	if !(config.TimeToAdaptFootprint >= 0) || !(config.AdaptFootprintPenalty >= 0) {
		return nil, util.WrapErrorf(ErrInvalidConfig, util.ErrInternalServerError,
			"footprint adaptation time %v and penalty %v must be >= 0", config.TimeToAdaptFootprint,
			config.AdaptFootprintPenalty)
	}
	if config.Env.EnvType() == pkg.ENV_FOOTPRINT && config.NumFootprintClasses < 1 {
		return nil, util.WrapErrorf(ErrInvalidConfig, util.ErrInternalServerError,
			"number of footprint classes %d must be >= 1", config.NumFootprintClasses)
	}
	if config.FootprintPolicy > FootprintPolicyScaledPenalty {
		return nil, util.WrapErrorf(ErrInvalidConfig, util.ErrInternalServerError,
			"footprint policy %d", config.FootprintPolicy)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TravGridObjective{
		space:  space,
		config: config,
		log:    log,
	}, nil
}

// SetGrid binds a new traversability map, nil unbinds the current one.
func (o *TravGridObjective) SetGrid(m TraversabilityMap) {
	if m == nil {
		o.grid.Store(nil)
		return
	}
	o.grid.Store(&gridBinding{m: m})
}

func (o *TravGridObjective) HasGrid() bool {
	return o.grid.Load() != nil
}

func (o *TravGridObjective) GetConfig() TravGridConfig {
	return o.config
}

func (o *TravGridObjective) boundGrid() (TraversabilityMap, error) {
	b := o.grid.Load()
	if b == nil {
		return nil, util.WrapErrorf(ErrNoGridBound, util.ErrConflict, "TravGridObjective")
	}
	return b.m, nil
}

// StateCost. estimated time to traverse the cell of s, or an infinite cost if the cell can not be traversed.
func (o *TravGridObjective) StateCost(s da.State) (da.Cost, error) {
	m, err := o.boundGrid()
	if err != nil {
		return 0, err
	}
	return o.stateCost(m, s)
}

func (o *TravGridObjective) position(s da.State) (CellPosition, error) {
	pos, err := o.config.Env.Position(s)
	if err != nil {
		return CellPosition{}, err
	}
	if pos.HasFootprint && (pos.FootprintClass < 0 || pos.FootprintClass > o.config.NumFootprintClasses) {
		return CellPosition{}, util.WrapErrorf(ErrInvalidFootprintClass, util.ErrInternalServerError,
			"footprint class %d, configured classes [0, %d]", pos.FootprintClass, o.config.NumFootprintClasses)
	}
	return pos, nil
}

func (o *TravGridObjective) stateCost(m TraversabilityMap, s da.State) (da.Cost, error) {
	pos, err := o.position(s)
	if err != nil {
		return 0, err
	}

	// negated comparisons also reject NaN
	if !(pos.X >= 0 && pos.X < float64(m.GetCellSizeX())) || !(pos.Y >= 0 && pos.Y < float64(m.GetCellSizeY())) {
		o.log.Warn("invalid state has been passed and will be ignored",
			zap.Float64("x", pos.X), zap.Float64("y", pos.Y), zap.String("env", o.config.Env.String()))
		return 0, util.WrapErrorf(ErrOutOfBoundsState, util.ErrBadParamInput,
			"state (%.2f, %.2f) outside of grid %dx%d", pos.X, pos.Y, m.GetCellSizeX(), m.GetCellSizeY())
	}

	class := m.GetCellClass(int(pos.X), int(pos.Y))
	drivability := m.GetDrivability(class)
	cost := cellTraversalTime(m.GetScaleX(), o.config.Speed, drivability)
	if cost.IsFinite() && pos.HasFootprint {
		cost = da.NewCost(cost.Value() / footprintSpeedFactor(pos.FootprintClass, o.config.NumFootprintClasses))
	}
	return cost, nil
}

// MotionCost. mean cost of s1 and s2 times the distance between them (x, y, theta/2). for EnvFootprint the
// time and penalty of changing the footprint is added.
func (o *TravGridObjective) MotionCost(s1, s2 da.State) (da.Cost, error) {
	m, err := o.boundGrid()
	if err != nil {
		return 0, err
	}

	stateCost := func(s da.State) (da.Cost, error) {
		return o.stateCost(m, s)
	}
	cost, err := objective.StateCostIntegral(o.space, stateCost, s1, s2, o.config.InterpolateMotionCost)
	if err != nil {
		return 0, err
	}

	if o.config.Env.EnvType() != pkg.ENV_FOOTPRINT {
		return cost, nil
	}
	if o.config.Speed == 0 {
		return da.InfiniteCost(), nil
	}
	return o.addFootprintCost(m, s1, s2, cost)
}

func (o *TravGridObjective) addFootprintCost(m TraversabilityMap, s1, s2 da.State, cost da.Cost) (da.Cost, error) {
	p1, err := o.position(s1)
	if err != nil {
		return 0, err
	}
	p2, err := o.position(s2)
	if err != nil {
		return 0, err
	}

	fpTimeSec := footprintAdaptationTime(p1.FootprintClass, p2.FootprintClass, o.config.NumFootprintClasses,
		o.config.TimeToAdaptFootprint)
	cost = cost.Add(da.NewCost(fpTimeSec))
	if fpTimeSec > 0 {
		cost = cost.Add(da.NewCost(o.config.AdaptFootprintPenalty))
	}

	distM := movementDistance(p1, p2) * m.GetScaleX()
	movTimeSec := distM / o.config.Speed

	// not enough time to finish the footprint change while traversing the segment.
	if fpTimeSec > movTimeSec {
		switch o.config.FootprintPolicy {
		case FootprintPolicyScaledPenalty:
			if movTimeSec == 0 {
				return da.InfiniteCost(), nil
			}
			cost = cost.Add(da.NewCost((fpTimeSec / movTimeSec) * o.config.AdaptFootprintPenalty *
				pkg.FOOTPRINT_SCALED_PENALTY_FACTOR))
		default:
			return da.InfiniteCost(), nil
		}
	}
	return cost, nil
}
