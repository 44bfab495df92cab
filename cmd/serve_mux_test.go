//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakelab/seissect/internal/model"
)

func TestBuildMux_HealthEndpoint(t *testing.T) {
	mux := buildMux()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestBuildMux_Assign_Valid(t *testing.T) {
	mux := buildMux()

	payload := assignRequest{
		Events: []model.Event{
			{Lon: 13.2, Lat: 38.8, DepthKM: 10},
			{Lon: 14.5, Lat: 40.0, DepthKM: 10}, // far outside every section
		},
		CenterLon:       13.2,
		CenterLat:       38.8,
		Strike:          0,
		MapLengthKM:     20,
		SectionDistance: 1,
		EventDistance:   5,
		DepthMaxKM:      50,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/sections/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp assignResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Sections.Sections, 1)
	require.Len(t, resp.Groups[0], 1)
	assert.Equal(t, 13.2, resp.Groups[0][0].Event.Lon)
}

func TestBuildMux_Assign_InvalidJSON(t *testing.T) {
	mux := buildMux()

	req := httptest.NewRequest(http.MethodPost, "/v1/sections/assign", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestBuildMux_Assign_BadParams(t *testing.T) {
	mux := buildMux()

	// Missing map length and distances.
	body, _ := json.Marshal(assignRequest{CenterLon: 13.2, CenterLat: 38.8})

	req := httptest.NewRequest(http.MethodPost, "/v1/sections/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBuildMux_Select_Valid(t *testing.T) {
	mux := buildMux()

	payload := selectRequest{
		Events: []model.Event{
			{Lon: 13.2, Lat: 38.8, DepthKM: 10},
			{Lon: 14.5, Lat: 40.0, DepthKM: 10},
		},
		Shape:     model.Circle(5),
		CenterLon: 13.2,
		CenterLat: 38.8,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/select", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Events []model.Event `json:"events"`
		Count  int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, 13.2, resp.Events[0].Lon)
}

func TestBuildMux_Select_InvalidShape(t *testing.T) {
	mux := buildMux()

	body, _ := json.Marshal(selectRequest{
		Shape:     model.Circle(-1),
		CenterLon: 13.2,
		CenterLat: 38.8,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/select", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
