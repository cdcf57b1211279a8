package main

import (
	"context"
	"flag"
	"math"
	"math/rand"
	"time"

	"github.com/lintang-b-s/travcost/pkg/config"
	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
	log "github.com/lintang-b-s/travcost/pkg/logger"
	"go.uber.org/zap"
)

var (
	envType        = flag.String("env", "footprint", "environment type: xy, xytheta or footprint")
	cellSize       = flag.Int("cell_size", 500, "width and height of the random grid in cells")
	numClasses     = flag.Int("num_classes", 8, "number of traversability classes of the random grid")
	numMotions     = flag.Int("num_motions", 1_000_000, "number of random motions")
	maxMotionCells = flag.Float64("max_motion_length", 5.0, "max motion length in cells")
	interpolate    = flag.Bool("interpolate", false, "interpolate motion cost along the motion")
	workers        = flag.Int("workers", 8, "number of evaluation workers")
	seed           = flag.Int64("seed", 42, "random seed")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	cfg := config.Default()
	cfg.EnvType = *envType
	cfg.EnableMotionCostInterpolation = *interpolate
	cfg.EvaluationWorkers = *workers
	re, err := engine.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	rd := rand.New(rand.NewSource(*seed))
	g, err := randomGrid(rd, *cellSize, *numClasses)
	if err != nil {
		logger.Fatal("failed to create grid", zap.Error(err))
	}
	re.SetGrid(g)

	motions := make([]da.Motion, *numMotions)
	for i := range motions {
		motions[i] = randomMotion(rd, *envType, float64(*cellSize), *maxMotionCells, cfg.NumFootprintClasses)
	}

	start := time.Now()
	results := re.EvaluateMotions(context.Background(), motions)
	elapsed := time.Since(start)

	var (
		feasible, infeasible, failed int
		totalCost                    float64
	)
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case !r.Cost.IsFinite():
			infeasible++
		default:
			feasible++
			totalCost += r.Cost.Value()
		}
	}

	logger.Info("random motions evaluated",
		zap.Int("motions", len(motions)),
		zap.Int("feasible", feasible),
		zap.Int("infeasible", infeasible),
		zap.Int("failed", failed),
		zap.Float64("meanFeasibleCost", totalCost/math.Max(1, float64(feasible))),
		zap.Duration("elapsed", elapsed),
		zap.Float64("avgMicroseconds", float64(elapsed.Microseconds())/math.Max(1, float64(len(motions)))),
	)
}

// randomGrid. class 0 is an obstacle, the other classes have increasing drivability.
func randomGrid(rd *rand.Rand, cellSize, numClasses int) (*grid.TraversabilityGrid, error) {
	classes := make([]grid.TraversabilityClass, numClasses)
	for i := range classes {
		classes[i] = grid.NewTraversabilityClass(float64(i) / float64(max(1, numClasses-1)))
	}
	g, err := grid.NewTraversabilityGrid(cellSize, cellSize, 0.1, 0.1, classes)
	if err != nil {
		return nil, err
	}
	for y := 0; y < cellSize; y++ {
		for x := 0; x < cellSize; x++ {
			if err := g.SetCellClass(x, y, uint8(rd.Intn(numClasses))); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func randomMotion(rd *rand.Rand, envType string, size, maxLen float64, numFootprintClasses int) da.Motion {
	x1, y1 := rd.Float64()*size, rd.Float64()*size
	angle := rd.Float64() * 2 * math.Pi
	l := rd.Float64() * maxLen
	x2, y2 := x1+l*math.Cos(angle), y1+l*math.Sin(angle)

	switch envType {
	case "xy":
		return da.NewMotion(da.NewRealVectorState(x1, y1), da.NewRealVectorState(x2, y2))
	case "footprint":
		return da.NewMotion(
			da.NewFootprintState(x1, y1, angle, rd.Intn(numFootprintClasses+1)),
			da.NewFootprintState(x2, y2, angle, rd.Intn(numFootprintClasses+1)))
	default:
		return da.NewMotion(da.NewSE2State(x1, y1, angle), da.NewSE2State(x2, y2, angle))
	}
}
