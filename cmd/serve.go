package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/model"
	"github.com/quakelab/seissect/internal/section"
	"github.com/quakelab/seissect/internal/selection"
)

var servePort int

// assignRequest is the JSON body of POST /v1/sections/assign.
type assignRequest struct {
	Events          []model.Event `json:"events"`
	CenterLon       float64       `json:"center_lon"`
	CenterLat       float64       `json:"center_lat"`
	Strike          float64       `json:"strike"`
	NumLeft         int           `json:"num_left"`
	NumRight        int           `json:"num_right"`
	MapLengthKM     float64       `json:"map_length_km"`
	SectionDistance float64       `json:"section_distance_km"`
	EventDistance   float64       `json:"event_distance_km"`
	DepthMinKM      float64       `json:"depth_min_km"`
	DepthMaxKM      float64       `json:"depth_max_km"`
	Zone            int           `json:"zone,omitempty"`
	Unit            string        `json:"unit,omitempty"`
}

// assignResponse groups assigned events by section index and carries the
// section descriptors for rendering.
type assignResponse struct {
	Sections model.SectionSet               `json:"sections"`
	Groups   map[int][]model.ProjectedEvent `json:"groups"`
}

// selectRequest is the JSON body of POST /v1/select.
type selectRequest struct {
	Events    []model.Event `json:"events"`
	Shape     model.Shape   `json:"shape"`
	CenterLon float64       `json:"center_lon"`
	CenterLat float64       `json:"center_lat"`
	Zone      int           `json:"zone,omitempty"`
	Unit      string        `json:"unit,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cross-section and selection queries over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mux := buildMux()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildMux wires the HTTP routes.
func buildMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /v1/sections/assign", handleAssign)
	mux.HandleFunc("POST /v1/select", handleSelect)

	return mux
}

func handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit := model.Unit(req.Unit)
	if unit == "" {
		unit = model.UnitKilometers
	}

	set, err := section.Build(section.BuildParams{
		Center:            model.GeographicPoint{Lon: req.CenterLon, Lat: req.CenterLat},
		StrikeDeg:         req.Strike,
		NumLeft:           req.NumLeft,
		NumRight:          req.NumRight,
		MapLengthKM:       req.MapLengthKM,
		SectionDistanceKM: req.SectionDistance,
		EventDistanceKM:   req.EventDistance,
		DepthMinKM:        req.DepthMinKM,
		DepthMaxKM:        req.DepthMaxKM,
		Zone:              req.Zone,
		Unit:              unit,
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := section.Assign(r.Context(), req.Events, set)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignResponse{Sections: set, Groups: groups})
}

func handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit := model.Unit(req.Unit)
	if unit == "" {
		unit = model.UnitKilometers
	}

	center := model.GeographicPoint{Lon: req.CenterLon, Lat: req.CenterLat}
	selected, err := selection.OnMap(req.Events, req.Shape, center, req.Zone, unit)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"events": selected, "count": len(selected)})
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
