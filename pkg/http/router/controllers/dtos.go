package controllers

import (
	"math"

	da "github.com/lintang-b-s/travcost/pkg/datastructure"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/grid"
	"github.com/lintang-b-s/travcost/pkg/http/usecases"
)

type stateRequest struct {
	X              *float64 `json:"x" validate:"required"`
	Y              *float64 `json:"y" validate:"required"`
	Yaw            float64  `json:"yaw"`
	FootprintClass int      `json:"footprint_class" validate:"gte=0"`
}

func (s stateRequest) toParams() usecases.StateParams {
	return usecases.StateParams{
		X:              *s.X,
		Y:              *s.Y,
		Yaw:            s.Yaw,
		FootprintClass: s.FootprintClass,
	}
}

type motionCostRequest struct {
	From stateRequest `json:"from"`
	To   stateRequest `json:"to"`
}

type motionCostsRequest struct {
	Motions []motionCostRequest `json:"motions" validate:"required,min=1,dive"`
}

type pathCostRequest struct {
	Path             string `json:"path" validate:"required"`
	FootprintClasses []int  `json:"footprint_classes" validate:"omitempty,dive,gte=0"`
}

type gridRequest struct {
	CellSizeX   int       `json:"cell_size_x" validate:"required,gt=0,lte=65536"`
	CellSizeY   int       `json:"cell_size_y" validate:"required,gt=0,lte=65536"`
	Scale       float64   `json:"scale" validate:"required,gt=0"`
	Drivability []float64 `json:"drivability" validate:"required,min=1,max=256,dive,gte=0,lte=1"`
	// row-major class index of every cell, all cells are class 0 when empty
	Cells []int `json:"cells" validate:"omitempty,dive,gte=0,lte=255"`
}

func (g gridRequest) toParams() usecases.GridParams {
	return usecases.GridParams{
		CellSizeX:   g.CellSizeX,
		CellSizeY:   g.CellSizeY,
		Scale:       g.Scale,
		Drivability: g.Drivability,
		Cells:       g.Cells,
	}
}

type cellUpdateRequest struct {
	X           int     `json:"x" validate:"gte=0"`
	Y           int     `json:"y" validate:"gte=0"`
	Class       int     `json:"class" validate:"gte=0,lte=255"`
	Probability float64 `json:"probability" validate:"gte=0,lte=1"`
	Drivability float64 `json:"drivability" validate:"gte=0,lte=1"`
}

type cellUpdatesRequest struct {
	Updates []cellUpdateRequest `json:"updates" validate:"required,min=1,dive"`
}

func (c cellUpdatesRequest) toCellUpdates() []grid.CellUpdate {
	updates := make([]grid.CellUpdate, len(c.Updates))
	for i, u := range c.Updates {
		updates[i] = grid.NewCellUpdate(u.X, u.Y, uint8(u.Class), u.Probability, u.Drivability)
	}
	return updates
}

// costResponse. infinite costs are not representable in json, Cost is null and Feasible false for them.
type costResponse struct {
	Cost     *float64 `json:"cost"`
	Feasible bool     `json:"feasible"`
}

func NewCostResponse(c da.Cost) costResponse {
	if !c.IsFinite() || math.IsNaN(c.Value()) {
		return costResponse{Cost: nil, Feasible: false}
	}
	v := c.Value()
	return costResponse{Cost: &v, Feasible: true}
}

type motionCostResult struct {
	costResponse
	Error string `json:"error,omitempty"`
}

type motionCostsResponse struct {
	Results []motionCostResult `json:"results"`
}

func NewMotionCostsResponse(results []engine.MotionResult) motionCostsResponse {
	resp := motionCostsResponse{Results: make([]motionCostResult, len(results))}
	for i, r := range results {
		if r.Err != nil {
			resp.Results[i] = motionCostResult{Error: r.Err.Error()}
			continue
		}
		resp.Results[i] = motionCostResult{costResponse: NewCostResponse(r.Cost)}
	}
	return resp
}

type pathCostResponse struct {
	costResponse
	NumStates int `json:"num_states"`
}

func NewPathCostResponse(c da.Cost, numStates int) pathCostResponse {
	return pathCostResponse{costResponse: NewCostResponse(c), NumStates: numStates}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
