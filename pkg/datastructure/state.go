package datastructure

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// State is a planning state owned by the planner. the cost model only reads it.
type State interface {
	Copy() State
}

// RealVectorState. plain xy position, Values[0] = x, Values[1] = y (grid coordinates).
type RealVectorState struct {
	Values []float64
}

func NewRealVectorState(x, y float64) *RealVectorState {
	return &RealVectorState{Values: []float64{x, y}}
}

func (s *RealVectorState) Copy() State {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &RealVectorState{Values: values}
}

func (s *RealVectorState) String() string {
	return fmt.Sprintf("xy%v", s.Values)
}

// SE2State. position in grid coordinates and yaw in radian.
type SE2State struct {
	X   float64
	Y   float64
	Yaw float64
}

func NewSE2State(x, y, yaw float64) *SE2State {
	return &SE2State{X: x, Y: y, Yaw: yaw}
}

func (s *SE2State) GetX() float64 {
	return s.X
}

func (s *SE2State) GetY() float64 {
	return s.Y
}

func (s *SE2State) GetYaw() float64 {
	return s.Yaw
}

func (s *SE2State) Point() r2.Point {
	return r2.Point{X: s.X, Y: s.Y}
}

func (s *SE2State) Copy() State {
	c := *s
	return &c
}

func (s *SE2State) String() string {
	return fmt.Sprintf("se2(%.2f, %.2f, %.2f)", s.X, s.Y, s.Yaw)
}

// FootprintState. SE2 state of a system that can change its footprint (e.g. stance width).
// FootprintClass 0 is the smallest footprint, numFootprintClasses the biggest one.
type FootprintState struct {
	SE2State
	FootprintClass int
}

func NewFootprintState(x, y, yaw float64, footprintClass int) *FootprintState {
	return &FootprintState{
		SE2State:       SE2State{X: x, Y: y, Yaw: yaw},
		FootprintClass: footprintClass,
	}
}

func (s *FootprintState) GetFootprintClass() int {
	return s.FootprintClass
}

func (s *FootprintState) Copy() State {
	c := *s
	return &c
}

func (s *FootprintState) String() string {
	return fmt.Sprintf("footprint(%.2f, %.2f, %.2f, class %d)", s.X, s.Y, s.Yaw, s.FootprintClass)
}

// Motion. path segment between two states.
type Motion struct {
	From State
	To   State
}

func NewMotion(from, to State) Motion {
	return Motion{From: from, To: to}
}
