package grid

import (
	"github.com/lintang-b-s/travcost/pkg/util"
)

// CellUpdate. partial map update of a single cell. the drivability of Class is replaced by Drivability,
// Probability is the confidence of the new classification.
type CellUpdate struct {
	X           int
	Y           int
	Class       uint8
	Probability float64
	Drivability float64
}

func NewCellUpdate(x, y int, class uint8, probability, drivability float64) CellUpdate {
	return CellUpdate{
		X:           x,
		Y:           y,
		Class:       class,
		Probability: probability,
		Drivability: drivability,
	}
}

// WithCellUpdates returns a copy of the grid with all updates applied. the receiver is left untouched,
// so the copy can be swapped in while planners keep reading the old grid.
// either every update is applied or none.
func (g *TraversabilityGrid) WithCellUpdates(updates []CellUpdate) (*TraversabilityGrid, error) {
	updated := g.Clone()
	for i, u := range updates {
		if u.Probability < 0 || u.Probability > 1 {
			return nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput,
				"cell update %d: probability %v outside [0, 1]", i, u.Probability)
		}
		if err := updated.SetTraversabilityClass(u.Class, NewTraversabilityClass(u.Drivability)); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cell update %d", i)
		}
		if err := updated.SetCellClass(u.X, u.Y, u.Class); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cell update %d", i)
		}
		updated.setCellProbability(u.X, u.Y, u.Probability)
	}
	return updated, nil
}
