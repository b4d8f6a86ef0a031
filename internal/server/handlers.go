package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/models"
	"github.com/san-kum/episim/internal/sim"
)

type runRequest struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Params     map[string]float64 `json:"params"`
}

type runResponse struct {
	Series sim.Series         `json:"series"`
	Meta   sim.Meta           `json:"meta"`
	Drift  float64            `json:"drift"`
	KPIs   map[string]float64 `json:"kpis"`
}

type paramGroup struct {
	Name string   `json:"name"`
	Keys []string `json:"keys"`
}

type modelInfo struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Dims        []string     `json:"dims"`
	Params      []paramGroup `json:"params"`
}

type integratorInfo struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	out := make([]modelInfo, 0, len(models.All()))
	for _, k := range models.All() {
		info := modelInfo{ID: k.String(), Description: k.Description(), Dims: k.Dims()}
		for _, g := range config.ParamsFor(k) {
			info.Params = append(info.Params, paramGroup{Name: g.Name, Keys: g.Keys})
		}
		out = append(out, info)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) listIntegrators(w http.ResponseWriter, r *http.Request) {
	out := make([]integratorInfo, 0, len(integrators.All()))
	for _, m := range integrators.All() {
		out = append(out, integratorInfo{ID: m.String(), Order: m.Order()})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.BodyLimit))
	if err := dec.Decode(&req); err != nil {
		s.metrics.RecordError("bad_request")
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Model == "" {
		req.Model = sim.DefaultModel
	}

	sc := &config.Scenario{Model: req.Model, Integrator: req.Integrator, Params: req.Params}
	if err := sc.Validate(); err != nil {
		s.metrics.RecordError("invalid_params")
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := sc.SimConfig()
	if steps := sim.Sanitize(cfg.Params).StepCount; steps > float64(s.opts.MaxSteps) {
		s.metrics.RecordError("too_many_steps")
		s.respondError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("run needs %.0f steps, limit is %d", steps, s.opts.MaxSteps))
		return
	}

	start := time.Now()
	res, err := sim.Run(cfg)
	if err != nil {
		if errors.Is(err, dynamo.ErrTooManySteps) {
			s.metrics.RecordError("too_many_steps")
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if errors.Is(err, dynamo.ErrUnknownModel) {
			s.metrics.RecordError("unknown_model")
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.metrics.RecordError("internal")
		s.logger.Error("run failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "run failed")
		return
	}
	elapsed := time.Since(start)
	s.metrics.RecordRun(res.Meta.Model, res.Meta.Method, res.Steps, res.Drift, elapsed)

	s.logger.Debug("run complete",
		zap.String("model", res.Meta.Model),
		zap.String("method", res.Meta.Method),
		zap.Int("steps", res.Steps),
		zap.Float64("drift", res.Drift),
		zap.Duration("elapsed", elapsed),
	)

	s.respondJSON(w, http.StatusOK, runResponse{
		Series: res.Series,
		Meta:   res.Meta,
		Drift:  res.Drift,
		KPIs:   metrics.Summarize(res),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{
		"error": message,
		"code":  status,
	})
}
