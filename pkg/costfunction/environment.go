package costfunction

import (
	"github.com/lintang-b-s/travcost/pkg"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/util"
)

// CellPosition. position of a state in grid coordinates. FootprintClass is only set for EnvFootprint.
type CellPosition struct {
	X              float64
	Y              float64
	FootprintClass int
	HasFootprint   bool
}

// Environment is the closed set of state encodings: EnvXY, EnvXYTheta and EnvFootprint.
type Environment interface {
	// Position extracts the grid position (and footprint class) of s.
	Position(s da.State) (CellPosition, error)
	EnvType() pkg.EnvType
	String() string

	environment()
}

type EnvXY struct{}

type EnvXYTheta struct{}

type EnvFootprint struct{}

func (EnvXY) environment()        {}
func (EnvXYTheta) environment()   {}
func (EnvFootprint) environment() {}

func (EnvXY) EnvType() pkg.EnvType        { return pkg.ENV_XY }
func (EnvXYTheta) EnvType() pkg.EnvType   { return pkg.ENV_XYTHETA }
func (EnvFootprint) EnvType() pkg.EnvType { return pkg.ENV_FOOTPRINT }

func (e EnvXY) String() string        { return e.EnvType().String() }
func (e EnvXYTheta) String() string   { return e.EnvType().String() }
func (e EnvFootprint) String() string { return e.EnvType().String() }

func unsupportedState(env Environment, s da.State) error {
	return util.WrapErrorf(ErrUnsupportedVariant, util.ErrBadParamInput,
		"environment %s received state of type %T", env, s)
}

func (e EnvXY) Position(s da.State) (CellPosition, error) {
	st, ok := s.(*da.RealVectorState)
	if !ok || len(st.Values) < 2 {
		return CellPosition{}, unsupportedState(e, s)
	}
	return CellPosition{X: st.Values[0], Y: st.Values[1]}, nil
}

func (e EnvXYTheta) Position(s da.State) (CellPosition, error) {
	st, ok := s.(*da.SE2State)
	if !ok {
		return CellPosition{}, unsupportedState(e, s)
	}
	return CellPosition{X: st.GetX(), Y: st.GetY()}, nil
}

func (e EnvFootprint) Position(s da.State) (CellPosition, error) {
	st, ok := s.(*da.FootprintState)
	if !ok {
		return CellPosition{}, unsupportedState(e, s)
	}
	return CellPosition{
		X:              st.GetX(),
		Y:              st.GetY(),
		FootprintClass: st.GetFootprintClass(),
		HasFootprint:   true,
	}, nil
}

func NewEnvironment(envType pkg.EnvType) (Environment, error) {
	switch envType {
	case pkg.ENV_XY:
		return EnvXY{}, nil
	case pkg.ENV_XYTHETA:
		return EnvXYTheta{}, nil
	case pkg.ENV_FOOTPRINT:
		return EnvFootprint{}, nil
	default:
		return nil, util.WrapErrorf(ErrUnsupportedVariant, util.ErrInternalServerError,
			"environment type %d", envType)
	}
}

// ParseEnvironment. "xy", "xytheta" or "footprint".
func ParseEnvironment(envType string) (Environment, error) {
	et, ok := pkg.GetEnvType(envType)
	if !ok {
		return nil, util.WrapErrorf(ErrUnsupportedVariant, util.ErrBadParamInput,
			"environment %q", envType)
	}
	return NewEnvironment(et)
}
