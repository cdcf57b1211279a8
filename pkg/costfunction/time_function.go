package costfunction

import (
	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/util"
)

// cellTraversalTime. time to traverse one cell. drivability 1.0 means the cell can be traversed with full speed,
// lower drivability scales the time up. a zero drivability or speed can not be traversed at all.
func cellTraversalTime(cellLength, speed, drivability float64) datastructure.Cost {
	if drivability == 0 || speed == 0 {
		return datastructure.InfiniteCost()
	}
	return datastructure.NewCost((cellLength / speed) / drivability)
}

// footprintSpeedFactor. max footprint means full speed, the min footprint increases the cost by
// the number of footprint classes + 1. always within (0, 1].
func footprintSpeedFactor(footprintClass, numFootprintClasses int) float64 {
	return float64(footprintClass+1) / float64(numFootprintClasses+1)
}

// footprintAdaptationTime. time to move from footprintClass1 to footprintClass2, in sec.
func footprintAdaptationTime(footprintClass1, footprintClass2, numFootprintClasses int,
	timeToAdaptFootprint float64) float64 {
	diff := util.Abs(footprintClass1 - footprintClass2)
	return (float64(diff) / float64(numFootprintClasses)) * timeToAdaptFootprint
}

// movementDistance. euclidean distance between two positions, in cells.
func movementDistance(p1, p2 CellPosition) float64 {
	return r2.Point{X: p1.X, Y: p1.Y}.Sub(r2.Point{X: p2.X, Y: p2.Y}).Norm()
}
