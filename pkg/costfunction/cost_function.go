package costfunction

import (
	"errors"
)

// TraversabilityMap. grid provider read by the cost model. implementations must not be mutated while bound,
// swap in a new map with SetGrid instead.
type TraversabilityMap interface {
	GetCellSizeX() int
	GetCellSizeY() int
	// GetScaleX. meter per cell edge.
	GetScaleX() float64
	GetCellClass(x, y int) uint8
	// GetDrivability. drivability in [0,1] of a traversability class.
	GetDrivability(class uint8) float64
}

var (
	ErrNoGridBound           = errors.New("no traversability grid available")
	ErrOutOfBoundsState      = errors.New("invalid state received")
	ErrUnsupportedVariant    = errors.New("unknown environment")
	ErrInvalidFootprintClass = errors.New("footprint class outside of the configured classes")
	ErrInvalidConfig         = errors.New("invalid traversability cost configuration")
)

// FootprintPolicy decides what happens to a motion whose footprint change takes longer than the motion itself.
type FootprintPolicy uint8

const (
	// FootprintPolicyInfinite disallows the motion (infinite cost).
	FootprintPolicyInfinite FootprintPolicy = iota
	// FootprintPolicyScaledPenalty adds (footprintTime / movementTime) * penalty * 100.
	FootprintPolicyScaledPenalty
)

func (fp FootprintPolicy) String() string {
	switch fp {
	case FootprintPolicyInfinite:
		return "infinite"
	case FootprintPolicyScaledPenalty:
		return "scaled_penalty"
	default:
		return "unknown"
	}
}

// TravGridConfig. immutable for the lifetime of a TravGridObjective.
type TravGridConfig struct {
	Env                   Environment
	Speed                 float64 // meter per second
	NumFootprintClasses   int
	TimeToAdaptFootprint  float64 // time to move from min to max footprint in sec.
	AdaptFootprintPenalty float64
	FootprintPolicy       FootprintPolicy
	// InterpolateMotionCost. evaluate intermediate states of a motion instead of only its endpoints.
	InterpolateMotionCost bool
}
