package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/travcost/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/travcost/pkg/http/usecases"
	"go.uber.org/zap"
)

type costAPI struct {
	costService CostService
	log         *zap.Logger
}

func New(costService CostService, log *zap.Logger) *costAPI {
	return &costAPI{
		costService: costService,
		log:         log,
	}
}

func (api *costAPI) Routes(group *helper.RouteGroup) {
	group.PUT("/grid", api.setGrid)
	group.PATCH("/grid/cells", api.updateCells)
	group.POST("/stateCost", api.stateCost)
	group.POST("/motionCost", api.motionCost)
	group.POST("/motionCosts", api.motionCosts)
	group.POST("/pathCost", api.pathCost)
}

func (api *costAPI) stateCost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request stateRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	cost, err := api.costService.StateCost(request.toParams())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCostResponse(cost)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *costAPI) motionCost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request motionCostRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	cost, err := api.costService.MotionCost(request.From.toParams(), request.To.toParams())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCostResponse(cost)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *costAPI) motionCosts(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request motionCostsRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	from := make([]usecases.StateParams, len(request.Motions))
	to := make([]usecases.StateParams, len(request.Motions))
	for i, m := range request.Motions {
		from[i] = m.From.toParams()
		to[i] = m.To.toParams()
	}

	results, err := api.costService.MotionCosts(r.Context(), from, to)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewMotionCostsResponse(results)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *costAPI) pathCost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request pathCostRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	cost, numStates, err := api.costService.PathCost(request.Path, request.FootprintClasses)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPathCostResponse(cost, numStates)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *costAPI) setGrid(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request gridRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.costService.SetGrid(request.toParams()); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": messageResponse{Message: "grid replaced"}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *costAPI) updateCells(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request cellUpdatesRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.costService.ApplyCellUpdates(request.toCellUpdates()); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": messageResponse{Message: "cells updated"}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
