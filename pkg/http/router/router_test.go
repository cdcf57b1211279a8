package router

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lintang-b-s/travcost/pkg/config"
	"github.com/lintang-b-s/travcost/pkg/engine"
	"github.com/lintang-b-s/travcost/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type costData struct {
	Cost      *float64 `json:"cost"`
	Feasible  bool     `json:"feasible"`
	NumStates int      `json:"num_states"`
	Error     string   `json:"error"`
}

func newTestHandler(t *testing.T, rateLimit float64, burst int) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	e, err := engine.NewEngine(config.Default(), log)
	require.NoError(t, err)
	return NewAPI(log).Handler(usecases.NewCostService(log, e), rateLimit, burst)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func setUniformGrid(t *testing.T, h http.Handler) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPut, "/api/grid", map[string]any{
		"cell_size_x": 10,
		"cell_size_y": 10,
		"scale":       1.0,
		"drivability": []float64{1.0},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStateCostWithoutGrid(t *testing.T) {
	h := newTestHandler(t, 0, 0)
	rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 1.0, "y": 1.0})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFLICT")
}

func TestStateCost(t *testing.T) {
	h := newTestHandler(t, 0, 0)
	setUniformGrid(t, h)

	t.Run("inside the grid", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 2.0, "y": 3.0, "yaw": 0.3})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		data := decodeData[costData](t, rec)
		require.NotNil(t, data.Cost)
		assert.True(t, data.Feasible)
		assert.InDelta(t, 1.0, *data.Cost, 1e-9)
	})

	t.Run("outside the grid", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 20.0, "y": 20.0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing coordinate", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 2.0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation error")
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 2.0, "y": 2.0, "z": 1.0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMotionCostAndCellUpdates(t *testing.T) {
	h := newTestHandler(t, 0, 0)
	setUniformGrid(t, h)

	motion := map[string]any{
		"from": map[string]any{"x": 0.0, "y": 0.0, "yaw": 0.0},
		"to":   map[string]any{"x": 3.0, "y": 4.0, "yaw": 0.0},
	}
	rec := doJSON(t, h, http.MethodPost, "/api/motionCost", motion)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData[costData](t, rec)
	require.NotNil(t, data.Cost)
	assert.InDelta(t, 5.0, *data.Cost, 1e-9)

	rec = doJSON(t, h, http.MethodPatch, "/api/grid/cells", map[string]any{
		"updates": []map[string]any{{"x": 3, "y": 4, "class": 1, "probability": 1.0, "drivability": 0.0}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/motionCost", motion)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data = decodeData[costData](t, rec)
	assert.Nil(t, data.Cost)
	assert.False(t, data.Feasible)
}

func TestMotionCosts(t *testing.T) {
	h := newTestHandler(t, 0, 0)
	setUniformGrid(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/motionCosts", map[string]any{
		"motions": []map[string]any{
			{"from": map[string]any{"x": 0.0, "y": 0.0}, "to": map[string]any{"x": 0.0, "y": 2.0}},
			{"from": map[string]any{"x": 0.0, "y": 0.0}, "to": map[string]any{"x": 50.0, "y": 0.0}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData[struct {
		Results []costData `json:"results"`
	}](t, rec)
	require.Len(t, data.Results, 2)
	require.NotNil(t, data.Results[0].Cost)
	assert.InDelta(t, 2.0, *data.Results[0].Cost, 1e-9)
	assert.Nil(t, data.Results[1].Cost)
	assert.NotEmpty(t, data.Results[1].Error)
}

func TestPathCost(t *testing.T) {
	h := newTestHandler(t, 0, 0)
	setUniformGrid(t, h)

	path := usecases.EncodePath([][]float64{{0, 0}, {3, 0}, {3, 4}})
	rec := doJSON(t, h, http.MethodPost, "/api/pathCost", map[string]any{"path": path})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData[costData](t, rec)
	require.NotNil(t, data.Cost)
	assert.Equal(t, 3, data.NumStates)
	assert.InDelta(t, 7.0+math.Pi/4, *data.Cost, 1e-6)

	rec = doJSON(t, h, http.MethodPost, "/api/pathCost", map[string]any{"path": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetGridValidation(t *testing.T) {
	h := newTestHandler(t, 0, 0)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"drivability above one", map[string]any{"cell_size_x": 2, "cell_size_y": 2, "scale": 1.0,
			"drivability": []float64{1.5}}},
		{"cell count mismatch", map[string]any{"cell_size_x": 2, "cell_size_y": 2, "scale": 1.0,
			"drivability": []float64{1.0}, "cells": []int{0, 0, 0}}},
		{"unknown class", map[string]any{"cell_size_x": 2, "cell_size_y": 1, "scale": 1.0,
			"drivability": []float64{1.0}, "cells": []int{0, 1}}},
		{"zero scale", map[string]any{"cell_size_x": 2, "cell_size_y": 1, "scale": 0.0,
			"drivability": []float64{1.0}}},
		{"cell count overflows", map[string]any{"cell_size_x": 1 << 32, "cell_size_y": 1 << 32, "scale": 1.0,
			"drivability": []float64{1.0}}},
		{"too many cells", map[string]any{"cell_size_x": 65536, "cell_size_y": 65536, "scale": 1.0,
			"drivability": []float64{1.0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPut, "/api/grid", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	// no grid was bound by any rejected request
	rec := doJSON(t, h, http.MethodPost, "/api/stateCost", map[string]any{"x": 1.0, "y": 1.0})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMiddleware(t *testing.T) {
	t.Run("heartbeat", func(t *testing.T) {
		h := newTestHandler(t, 0, 0)
		rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	})

	t.Run("content type", func(t *testing.T) {
		h := newTestHandler(t, 0, 0)
		req := httptest.NewRequest(http.MethodPost, "/api/stateCost", bytes.NewBufferString("x=1"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("rate limit", func(t *testing.T) {
		h := newTestHandler(t, 0.001, 1)
		body := map[string]any{"x": 1.0, "y": 1.0}
		assert.Equal(t, http.StatusConflict, doJSON(t, h, http.MethodPost, "/api/stateCost", body).Code)
		assert.Equal(t, http.StatusTooManyRequests, doJSON(t, h, http.MethodPost, "/api/stateCost", body).Code)
	})
}
