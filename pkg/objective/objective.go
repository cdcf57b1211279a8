package objective

import (
	"fmt"

	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/statespace"
)

// Objective. optimization objective queried by the planner for every sampled state and edge.
type Objective interface {
	StateCost(s da.State) (da.Cost, error)
	MotionCost(s1, s2 da.State) (da.Cost, error)
}

type StateCostFunc func(s da.State) (da.Cost, error)

// trapezoid. approximation of the integral of the state cost over a segment of length dist.
func trapezoid(c1, c2 da.Cost, dist float64) da.Cost {
	if !c1.IsFinite() || !c2.IsFinite() {
		return da.InfiniteCost()
	}
	return da.NewCost(0.5 * dist * (c1.Value() + c2.Value()))
}

// StateCostIntegral. integral of stateCost over the segment s1 -> s2.
// without interpolation it is the mean of the endpoint costs times the segment length. with interpolation
// the segment is split into space.ValidSegmentCount(s1, s2) pieces and the trapezoids of every piece are summed.
func StateCostIntegral(space statespace.Space, stateCost StateCostFunc, s1, s2 da.State,
	interpolate bool) (da.Cost, error) {
	prevCost, err := stateCost(s1)
	if err != nil {
		return 0, err
	}

	total := da.IdentityCost()
	prev := s1
	if interpolate {
		nd, err := space.ValidSegmentCount(s1, s2)
		if err != nil {
			return 0, err
		}
		for j := 1; j < nd; j++ {
			next, err := space.Interpolate(s1, s2, float64(j)/float64(nd))
			if err != nil {
				return 0, err
			}
			nextCost, err := stateCost(next)
			if err != nil {
				return 0, err
			}
			dist, err := space.Distance(prev, next)
			if err != nil {
				return 0, err
			}
			total = total.Add(trapezoid(prevCost, nextCost, dist))
			prev, prevCost = next, nextCost
		}
	}

	lastCost, err := stateCost(s2)
	if err != nil {
		return 0, err
	}
	dist, err := space.Distance(prev, s2)
	if err != nil {
		return 0, err
	}
	return total.Add(trapezoid(prevCost, lastCost, dist)), nil
}

// PathLength. cost of a motion is its length in the state space metric, every state is free.
type PathLength struct {
	space statespace.Space
}

func NewPathLength(space statespace.Space) *PathLength {
	return &PathLength{space: space}
}

func (pl *PathLength) StateCost(s da.State) (da.Cost, error) {
	return da.IdentityCost(), nil
}

func (pl *PathLength) MotionCost(s1, s2 da.State) (da.Cost, error) {
	d, err := pl.space.Distance(s1, s2)
	if err != nil {
		return 0, err
	}
	return da.NewCost(d), nil
}

type weightedObjective struct {
	objective Objective
	weight    float64
}

// Multi. weighted sum of several objectives.
type Multi struct {
	objectives []weightedObjective
}

func NewMulti() *Multi {
	return &Multi{}
}

func (m *Multi) AddObjective(o Objective, weight float64) error {
	if weight < 0 {
		return fmt.Errorf("objective weight must be non-negative, got %v", weight)
	}
	m.objectives = append(m.objectives, weightedObjective{objective: o, weight: weight})
	return nil
}

func (m *Multi) GetObjectiveCount() int {
	return len(m.objectives)
}

func (m *Multi) StateCost(s da.State) (da.Cost, error) {
	total := da.IdentityCost()
	for _, wo := range m.objectives {
		c, err := wo.objective.StateCost(s)
		if err != nil {
			return 0, err
		}
		total = total.Add(c.Scale(wo.weight))
	}
	return total, nil
}

func (m *Multi) MotionCost(s1, s2 da.State) (da.Cost, error) {
	total := da.IdentityCost()
	for _, wo := range m.objectives {
		c, err := wo.objective.MotionCost(s1, s2)
		if err != nil {
			return 0, err
		}
		total = total.Add(c.Scale(wo.weight))
	}
	return total, nil
}
