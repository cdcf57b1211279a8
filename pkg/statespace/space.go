package statespace

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/travcost/pkg"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/util"
)

var (
	ErrStateTypeMismatch = errors.New("state does not belong to this state space")
)

// Space. metric space of planning states.
type Space interface {
	// Distance between two states, in grid cells (+ weighted radian for SE2 spaces).
	Distance(s1, s2 da.State) (float64, error)
	// Interpolate returns the state at fraction t in [0,1] of the segment from -> to.
	Interpolate(from, to da.State, t float64) (da.State, error)
	// ValidSegmentCount. number of pieces the segment s1 -> s2 is split into for cost interpolation.
	ValidSegmentCount(s1, s2 da.State) (int, error)
	Name() string
}

type baseSpace struct {
	longestValidSegment float64
}

func newBaseSpace(longestValidSegment float64) baseSpace {
	if longestValidSegment <= 0 {
		longestValidSegment = pkg.DEFAULT_LONGEST_VALID_SEGMENT
	}
	return baseSpace{longestValidSegment: longestValidSegment}
}

func (b baseSpace) segmentCount(dist float64) int {
	n := int(math.Ceil(dist / b.longestValidSegment))
	if n < 1 {
		return 1
	}
	return n
}

func mismatch(space string, s da.State) error {
	return util.WrapErrorf(ErrStateTypeMismatch, util.ErrBadParamInput, "%s space received state of type %T", space, s)
}

// RealVectorSpace. 2D xy space.
type RealVectorSpace struct {
	baseSpace
}

func NewRealVectorSpace(longestValidSegment float64) *RealVectorSpace {
	return &RealVectorSpace{baseSpace: newBaseSpace(longestValidSegment)}
}

func (rs *RealVectorSpace) Name() string {
	return "real_vector"
}

func (rs *RealVectorSpace) point(s da.State) (r2.Point, error) {
	st, ok := s.(*da.RealVectorState)
	if !ok || len(st.Values) < 2 {
		return r2.Point{}, mismatch(rs.Name(), s)
	}
	return r2.Point{X: st.Values[0], Y: st.Values[1]}, nil
}

func (rs *RealVectorSpace) Distance(s1, s2 da.State) (float64, error) {
	p1, err := rs.point(s1)
	if err != nil {
		return 0, err
	}
	p2, err := rs.point(s2)
	if err != nil {
		return 0, err
	}
	return p1.Sub(p2).Norm(), nil
}

func (rs *RealVectorSpace) Interpolate(from, to da.State, t float64) (da.State, error) {
	p1, err := rs.point(from)
	if err != nil {
		return nil, err
	}
	p2, err := rs.point(to)
	if err != nil {
		return nil, err
	}
	p := p1.Add(p2.Sub(p1).Mul(t))
	return da.NewRealVectorState(p.X, p.Y), nil
}

func (rs *RealVectorSpace) ValidSegmentCount(s1, s2 da.State) (int, error) {
	d, err := rs.Distance(s1, s2)
	if err != nil {
		return 0, err
	}
	return rs.segmentCount(d), nil
}

// SE2Space. xy position + yaw. distance = ||xy|| + 0.5 * |yaw difference|.
type SE2Space struct {
	baseSpace
}

func NewSE2Space(longestValidSegment float64) *SE2Space {
	return &SE2Space{baseSpace: newBaseSpace(longestValidSegment)}
}

func (ss *SE2Space) Name() string {
	return "se2"
}

func (ss *SE2Space) se2(s da.State) (*da.SE2State, error) {
	switch st := s.(type) {
	case *da.SE2State:
		return st, nil
	default:
		return nil, mismatch(ss.Name(), s)
	}
}

func (ss *SE2Space) Distance(s1, s2 da.State) (float64, error) {
	a, err := ss.se2(s1)
	if err != nil {
		return 0, err
	}
	b, err := ss.se2(s2)
	if err != nil {
		return 0, err
	}
	return se2Distance(a, b), nil
}

func (ss *SE2Space) Interpolate(from, to da.State, t float64) (da.State, error) {
	a, err := ss.se2(from)
	if err != nil {
		return nil, err
	}
	b, err := ss.se2(to)
	if err != nil {
		return nil, err
	}
	return se2Interpolate(a, b, t), nil
}

func (ss *SE2Space) ValidSegmentCount(s1, s2 da.State) (int, error) {
	d, err := ss.Distance(s1, s2)
	if err != nil {
		return 0, err
	}
	return ss.segmentCount(d), nil
}

// FootprintSpace. SE2 + discrete footprint class. the footprint class does not add to the distance.
type FootprintSpace struct {
	baseSpace
	numFootprintClasses int
}

func NewFootprintSpace(longestValidSegment float64, numFootprintClasses int) *FootprintSpace {
	return &FootprintSpace{
		baseSpace:           newBaseSpace(longestValidSegment),
		numFootprintClasses: numFootprintClasses,
	}
}

func (fs *FootprintSpace) Name() string {
	return "footprint"
}

func (fs *FootprintSpace) GetNumFootprintClasses() int {
	return fs.numFootprintClasses
}

func (fs *FootprintSpace) footprint(s da.State) (*da.FootprintState, error) {
	st, ok := s.(*da.FootprintState)
	if !ok {
		return nil, mismatch(fs.Name(), s)
	}
	return st, nil
}

func (fs *FootprintSpace) Distance(s1, s2 da.State) (float64, error) {
	a, err := fs.footprint(s1)
	if err != nil {
		return 0, err
	}
	b, err := fs.footprint(s2)
	if err != nil {
		return 0, err
	}
	return se2Distance(&a.SE2State, &b.SE2State), nil
}

func (fs *FootprintSpace) Interpolate(from, to da.State, t float64) (da.State, error) {
	a, err := fs.footprint(from)
	if err != nil {
		return nil, err
	}
	b, err := fs.footprint(to)
	if err != nil {
		return nil, err
	}
	se2 := se2Interpolate(&a.SE2State, &b.SE2State, t)
	class := int(math.Floor(float64(a.FootprintClass) + float64(b.FootprintClass-a.FootprintClass)*t + 0.5))
	class = util.Clamp(class, 0, fs.numFootprintClasses)
	return &da.FootprintState{SE2State: *se2, FootprintClass: class}, nil
}

func (fs *FootprintSpace) ValidSegmentCount(s1, s2 da.State) (int, error) {
	d, err := fs.Distance(s1, s2)
	if err != nil {
		return 0, err
	}
	return fs.segmentCount(d), nil
}

func se2Distance(a, b *da.SE2State) float64 {
	posDist := a.Point().Sub(b.Point()).Norm()
	yawDist := math.Abs(util.NormalizeAngle(b.Yaw - a.Yaw))
	return posDist + pkg.SE2_YAW_DISTANCE_WEIGHT*yawDist
}

func se2Interpolate(a, b *da.SE2State, t float64) *da.SE2State {
	p := a.Point().Add(b.Point().Sub(a.Point()).Mul(t))
	// shortest arc
	dYaw := util.NormalizeAngle(b.Yaw - a.Yaw)
	yaw := util.NormalizeAngle(a.Yaw + dYaw*t)
	return da.NewSE2State(p.X, p.Y, yaw)
}

// NewSpace. state space matching an environment type.
func NewSpace(envType pkg.EnvType, longestValidSegment float64, numFootprintClasses int) (Space, error) {
	switch envType {
	case pkg.ENV_XY:
		return NewRealVectorSpace(longestValidSegment), nil
	case pkg.ENV_XYTHETA:
		return NewSE2Space(longestValidSegment), nil
	case pkg.ENV_FOOTPRINT:
		return NewFootprintSpace(longestValidSegment, numFootprintClasses), nil
	default:
		return nil, fmt.Errorf("no state space for environment type %v", envType)
	}
}
