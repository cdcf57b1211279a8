package usecases

import (
	"math"

	"github.com/lintang-b-s/travcost/pkg"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/util"
	"github.com/twpayne/go-polyline"
)

// decodePath. polyline coordinates are (x, y) grid coordinates. the yaw of every state points to the next state,
// the last state keeps the yaw of the one before it.
func (cs *CostService) decodePath(encodedPath string, footprintClasses []int) ([]da.State, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encodedPath))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decoding path polyline")
	}
	if len(rest) != 0 || len(coords) == 0 {
		return nil, util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput, "path polyline is empty or malformed")
	}

	envType := cs.engine.GetConfig().GetEnvType()
	if envType == pkg.ENV_FOOTPRINT && len(footprintClasses) != len(coords) {
		return nil, util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput,
			"path has %d states but %d footprint classes", len(coords), len(footprintClasses))
	}

	states := make([]da.State, len(coords))
	yaw := 0.0
	for i, c := range coords {
		if i+1 < len(coords) {
			next := coords[i+1]
			if next[0] != c[0] || next[1] != c[1] {
				yaw = math.Atan2(next[1]-c[1], next[0]-c[0])
			}
		}
		p := StateParams{X: c[0], Y: c[1], Yaw: yaw}
		if envType == pkg.ENV_FOOTPRINT {
			p.FootprintClass = footprintClasses[i]
		}
		states[i] = cs.toState(p)
	}
	return states, nil
}

// EncodePath. inverse of decodePath for xy coordinates, precision 1e-5 cells.
func EncodePath(xy [][]float64) string {
	return string(polyline.EncodeCoords(xy))
}
