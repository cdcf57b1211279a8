package pkg

import "math"

// enum of environment type, i.e. how a planning state encodes its position
type EnvType uint8

const (
	ENV_XY EnvType = iota
	ENV_XYTHETA
	ENV_FOOTPRINT
)

var (
	// INF_COST marks a state or motion that can not be traversed. it is a valid cost, not an error.
	INF_COST = math.Inf(1)
)

const (
	DEFAULT_SPEED                   = 1.0  // grid scale unit (meter) per second
	DEFAULT_NUM_FOOTPRINT_CLASSES   = 10   // number of discrete footprint classes above the minimum one
	DEFAULT_TIME_TO_ADAPT_FOOTPRINT = 10.0 // time to move from min to max footprint in sec.
	DEFAULT_ADAPT_FOOTPRINT_PENALTY = 2.0
	DEFAULT_LONGEST_VALID_SEGMENT   = 1.0 // in cells
	DEFAULT_EVALUATION_WORKERS      = 4

	// upper bound of cellSizeX * cellSizeY, one byte per cell
	MAX_GRID_CELLS = 1 << 26

	// weight of the orientation component in the SE2 distance
	SE2_YAW_DISTANCE_WEIGHT = 0.5

	// multiplier of the scaled_penalty footprint policy
	FOOTPRINT_SCALED_PENALTY_FACTOR = 100.0
)

const (
	DEBUG = false
)

const (
	FOOTPRINT_POLICY_INFINITE       = "infinite"
	FOOTPRINT_POLICY_SCALED_PENALTY = "scaled_penalty"
)

func (e EnvType) String() string {
	switch e {
	case ENV_XY:
		return "xy"
	case ENV_XYTHETA:
		return "xytheta"
	case ENV_FOOTPRINT:
		return "footprint"
	default:
		return "unknown"
	}
}

func GetEnvType(envType string) (EnvType, bool) {
	switch envType {
	case "xy":
		return ENV_XY, true
	case "xytheta":
		return ENV_XYTHETA, true
	case "footprint":
		return ENV_FOOTPRINT, true
	default:
		return 0, false
	}
}
