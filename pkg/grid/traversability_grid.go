package grid

import (
	"errors"

	"github.com/lintang-b-s/travcost/pkg"
	"github.com/lintang-b-s/travcost/pkg/util"
)

var (
	ErrInvalidGrid        = errors.New("invalid traversability grid")
	ErrCellOutOfGrid      = errors.New("cell is outside of the traversability grid")
	ErrUnknownClass       = errors.New("unknown traversability class")
	ErrInvalidDrivability = errors.New("drivability must be within [0, 1]")
)

// TraversabilityClass. drivability 0 = obstacle, 1 = full speed.
type TraversabilityClass struct {
	drivability float64
}

func NewTraversabilityClass(drivability float64) TraversabilityClass {
	return TraversabilityClass{drivability: drivability}
}

func (tc TraversabilityClass) GetDrivability() float64 {
	return tc.drivability
}

// TraversabilityGrid. cellSizeX * cellSizeY cells, each one holding the id of its traversability class.
// cells are stored row-major: cells[y*cellSizeX+x].
type TraversabilityGrid struct {
	cellSizeX int
	cellSizeY int
	scaleX    float64 // meter per cell
	scaleY    float64
	cells     []uint8
	classes   []TraversabilityClass
	// classification probability per cell, allocated on the first partial update. nil means 1.0 everywhere.
	probabilities []float32
}

func NewTraversabilityGrid(cellSizeX, cellSizeY int, scaleX, scaleY float64,
	classes []TraversabilityClass) (*TraversabilityGrid, error) {
	if cellSizeX <= 0 || cellSizeY <= 0 {
		return nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput,
			"grid size must be positive, got %dx%d", cellSizeX, cellSizeY)
	}
	if cellSizeX > pkg.MAX_GRID_CELLS/cellSizeY {
		return nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput,
			"grid %dx%d exceeds %d cells", cellSizeX, cellSizeY, pkg.MAX_GRID_CELLS)
	}
	if scaleX <= 0 || scaleY <= 0 {
		return nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput,
			"grid scale must be positive, got (%v, %v)", scaleX, scaleY)
	}
	if len(classes) == 0 || len(classes) > 256 {
		return nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput,
			"grid needs between 1 and 256 traversability classes, got %d", len(classes))
	}
	for i, c := range classes {
		if err := checkDrivability(c.drivability); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "traversability class %d", i)
		}
	}

	cs := make([]TraversabilityClass, len(classes))
	copy(cs, classes)
	return &TraversabilityGrid{
		cellSizeX: cellSizeX,
		cellSizeY: cellSizeY,
		scaleX:    scaleX,
		scaleY:    scaleY,
		cells:     make([]uint8, cellSizeX*cellSizeY),
		classes:   cs,
	}, nil
}

// NewUniformGrid. every cell belongs to class 0 with the given drivability.
func NewUniformGrid(cellSizeX, cellSizeY int, scale, drivability float64) (*TraversabilityGrid, error) {
	return NewTraversabilityGrid(cellSizeX, cellSizeY, scale, scale,
		[]TraversabilityClass{NewTraversabilityClass(drivability)})
}

func checkDrivability(d float64) error {
	if !(d >= 0 && d <= 1) {
		return ErrInvalidDrivability
	}
	return nil
}

func (g *TraversabilityGrid) GetCellSizeX() int {
	return g.cellSizeX
}

func (g *TraversabilityGrid) GetCellSizeY() int {
	return g.cellSizeY
}

func (g *TraversabilityGrid) GetScaleX() float64 {
	return g.scaleX
}

func (g *TraversabilityGrid) GetScaleY() float64 {
	return g.scaleY
}

func (g *TraversabilityGrid) GetNumClasses() int {
	return len(g.classes)
}

func (g *TraversabilityGrid) InGrid(x, y int) bool {
	return x >= 0 && x < g.cellSizeX && y >= 0 && y < g.cellSizeY
}

// GetCellClass. caller must check InGrid first.
func (g *TraversabilityGrid) GetCellClass(x, y int) uint8 {
	return g.cells[y*g.cellSizeX+x]
}

// GetCellProbability. probability of the class assigned to the cell. caller must check InGrid first.
func (g *TraversabilityGrid) GetCellProbability(x, y int) float64 {
	if g.probabilities == nil {
		return 1.0
	}
	return float64(g.probabilities[y*g.cellSizeX+x])
}

func (g *TraversabilityGrid) setCellProbability(x, y int, probability float64) {
	if g.probabilities == nil {
		if probability == 1.0 {
			return
		}
		g.probabilities = make([]float32, len(g.cells))
		for i := range g.probabilities {
			g.probabilities[i] = 1.0
		}
	}
	g.probabilities[y*g.cellSizeX+x] = float32(probability)
}

// GetDrivability. drivability of a traversability class, unknown classes are not drivable.
func (g *TraversabilityGrid) GetDrivability(class uint8) float64 {
	if int(class) >= len(g.classes) {
		return 0
	}
	return g.classes[class].drivability
}

func (g *TraversabilityGrid) SetCellClass(x, y int, class uint8) error {
	if !g.InGrid(x, y) {
		return util.WrapErrorf(ErrCellOutOfGrid, util.ErrBadParamInput, "cell (%d, %d)", x, y)
	}
	if int(class) >= len(g.classes) {
		return util.WrapErrorf(ErrUnknownClass, util.ErrBadParamInput, "class %d", class)
	}
	g.cells[y*g.cellSizeX+x] = class
	return nil
}

// SetTraversabilityClass. sets (or appends, if class == number of classes) a traversability class.
func (g *TraversabilityGrid) SetTraversabilityClass(class uint8, tc TraversabilityClass) error {
	if err := checkDrivability(tc.drivability); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "traversability class %d", class)
	}
	switch {
	case int(class) < len(g.classes):
		g.classes[class] = tc
	case int(class) == len(g.classes):
		g.classes = append(g.classes, tc)
	default:
		return util.WrapErrorf(ErrUnknownClass, util.ErrBadParamInput,
			"class %d would leave a gap after %d classes", class, len(g.classes))
	}
	return nil
}

// Clone. deep copy, the clone can be modified while the original is still being read.
func (g *TraversabilityGrid) Clone() *TraversabilityGrid {
	cells := make([]uint8, len(g.cells))
	copy(cells, g.cells)
	classes := make([]TraversabilityClass, len(g.classes))
	copy(classes, g.classes)
	var probabilities []float32
	if g.probabilities != nil {
		probabilities = make([]float32, len(g.probabilities))
		copy(probabilities, g.probabilities)
	}
	return &TraversabilityGrid{
		cellSizeX:     g.cellSizeX,
		cellSizeY:     g.cellSizeY,
		scaleX:        g.scaleX,
		scaleY:        g.scaleY,
		cells:         cells,
		classes:       classes,
		probabilities: probabilities,
	}
}
