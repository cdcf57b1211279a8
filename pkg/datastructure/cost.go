package datastructure

import (
	"math"

	"github.com/lintang-b-s/travcost/pkg"
)

// Cost of a state or a motion. an infinite cost means the state/motion is infeasible.
type Cost float64

func NewCost(v float64) Cost {
	return Cost(v)
}

func InfiniteCost() Cost {
	return Cost(pkg.INF_COST)
}

func IdentityCost() Cost {
	return Cost(0)
}

func (c Cost) Value() float64 {
	return float64(c)
}

func (c Cost) IsFinite() bool {
	return !math.IsInf(float64(c), 0) && !math.IsNaN(float64(c))
}

func (c Cost) Add(o Cost) Cost {
	return c + o
}

func (c Cost) Scale(w float64) Cost {
	if w == 0 {
		return IdentityCost()
	}
	return Cost(float64(c) * w)
}
