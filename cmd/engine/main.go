package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/travcost/pkg/config"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/lintang-b-s/travcost/pkg/http"
	"github.com/lintang-b-s/travcost/pkg/http/usecases"
	"github.com/lintang-b-s/travcost/pkg/logger"
	"go.uber.org/zap"
)

var (
	configPath      = flag.String("config_path", "./data", "directory containing config.yaml")
	useRateLimit    = flag.Bool("rate_limit", false, "enable the global request rate limiter")
	gridCellSizeX   = flag.Int("grid_cell_size_x", 0, "width of the initial uniform grid in cells, 0 starts without a grid")
	gridCellSizeY   = flag.Int("grid_cell_size_y", 0, "height of the initial uniform grid in cells")
	gridScale       = flag.Float64("grid_scale", 0.1, "cell edge length of the initial uniform grid in meter")
	gridDrivability = flag.Float64("grid_drivability", 1.0, "drivability of every cell of the initial uniform grid")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	costEngine, err := engine.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create cost engine", zap.Error(err))
	}

	if *gridCellSizeX > 0 && *gridCellSizeY > 0 {
		g, err := grid.NewUniformGrid(*gridCellSizeX, *gridCellSizeY, *gridScale, *gridDrivability)
		if err != nil {
			logger.Fatal("failed to create initial grid", zap.Error(err))
		}
		costEngine.SetGrid(g)
	}

	api := http.NewServer(logger)

	costService := usecases.NewCostService(logger, costEngine)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, costService); err != nil {
		logger.Fatal("failed to start http server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("Traversability Cost Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("http server error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
