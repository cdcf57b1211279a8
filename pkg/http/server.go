package http

import (
	"context"

	http_router "github.com/lintang-b-s/travcost/pkg/http/router"
	"github.com/lintang-b-s/travcost/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/travcost/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	costService controllers.CostService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 200.0)
	viper.SetDefault("RATE_LIMIT_BURST", 400)

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	rateLimit := 0.0
	if useRateLimit {
		rateLimit = viper.GetFloat64("RATE_LIMIT_RPS")
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(
			gctx, config,
			costService, rateLimit, viper.GetInt("RATE_LIMIT_BURST"),
		)
	})
	s.g = g

	return s, nil
}

// Wait blocks until the http server stopped.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}
