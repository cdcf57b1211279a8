package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/travcost/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/travcost/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/travcost/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler. router wrapped in the middleware chain. rateLimit <= 0 disables the rate limiter.
func (api *API) Handler(costService controllers.CostService, rateLimit float64, burst int) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")
	costRoutes := controllers.New(costService, api.log)
	costRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, RequestID, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if rateLimit > 0 {
		mwChain = append(mwChain, Limit(rateLimit, burst))
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	costService controllers.CostService,
	rateLimit float64,
	burst int,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(costService, rateLimit, burst), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	}
}
