package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/procsim/internal/config"
	"github.com/me/procsim/internal/loader"
	"github.com/me/procsim/internal/sim"
	"github.com/me/procsim/internal/store"
	"github.com/me/procsim/internal/tracing"
	"github.com/me/procsim/pkg/model"
)

const (
	defaultRunSource = "api"

	// maxRunRequestBytes bounds a create-run body, workload included.
	maxRunRequestBytes = 1 << 20
)

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.CreateRunRequest
	body := http.MaxBytesReader(w, r.Body, maxRunRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, reqID, http.StatusRequestEntityTooLarge, &model.APIError{
				Code:    model.ErrTooLarge,
				Message: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return
		}
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	cfg, details := s.runConfig(req)
	format, err := loader.ParseFormat(req.Format)
	if err != nil {
		details = append(details, model.FieldError{Field: "format", Message: err.Error()})
	}
	if strings.TrimSpace(req.Workload) == "" {
		details = append(details, model.FieldError{Field: "workload", Message: "workload is required"})
	}
	if len(details) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid run request", details...))
		return
	}

	procs, err := s.parser.Parse([]byte(req.Workload), format)
	if err != nil {
		apiErr := &model.APIError{Code: model.ErrLoad, Message: "workload rejected"}
		var pe *loader.ParseError
		if errors.As(err, &pe) {
			apiErr.Details = []model.FieldError{{Field: "workload", Line: pe.Line, Message: pe.Reason}}
		} else {
			apiErr.Message = err.Error()
		}
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}
	if len(procs) == 0 {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("workload defines no processes"))
		return
	}

	source := req.Source
	if source == "" {
		source = defaultRunSource
	}

	ctx, span := tracing.StartSpan(r.Context(), "simulation")
	span.WithAttributes(map[string]string{"policy": cfg.Policy, "source": source})
	obs := tracing.NewSpanObserver(span)
	run, runErr := sim.NewRunner(cfg, s.clock, s.logger).Run(ctx, source, procs, obs)
	obs.Flush()
	tracing.EndSpan(span, runErr)

	if run == nil {
		if errors.Is(runErr, model.ErrInvalidProcess) {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(runErr.Error()))
			return
		}
		respondInternal(w, reqID, runErr)
		return
	}
	if runErr != nil {
		// The partial run is archived; its error field explains the early stop.
		s.logger.Warn("run stopped early", "run_id", run.ID, "error", runErr)
	}

	if err := s.store.CreateRun(r.Context(), run); err != nil {
		respondInternal(w, reqID, err)
		return
	}
	s.logger.Info("run archived", "run_id", run.ID, "policy", run.Policy, "ticks", run.Ticks)
	respondCreated(w, reqID, run)
}

// runConfig overlays the request on the server's simulation defaults.
func (s *Server) runConfig(req model.CreateRunRequest) (config.SimConfig, []model.FieldError) {
	cfg := s.sim
	cfg.PaceUnit = 0

	var details []model.FieldError
	if req.Policy != "" {
		kind, ok := model.ParsePolicyKind(req.Policy)
		if !ok {
			details = append(details, model.FieldError{Field: "policy", Message: "unknown policy " + strconv.Quote(req.Policy)})
		} else {
			cfg.Policy = string(kind)
		}
	}
	if req.IOWait != "" {
		d, err := time.ParseDuration(req.IOWait)
		switch {
		case err != nil:
			details = append(details, model.FieldError{Field: "io_wait", Message: err.Error()})
		case d < 0:
			details = append(details, model.FieldError{Field: "io_wait", Message: "io_wait must not be negative"})
		default:
			cfg.IOWait = d
		}
	}
	return cfg, details
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	q := r.URL.Query()
	var details []model.FieldError
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, model.FieldError{Field: "limit", Message: "must be an integer"})
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, model.FieldError{Field: "offset", Message: "must be an integer"})
		}
		opts.Offset = n
	}
	if v := q.Get("policy"); v != "" {
		kind, ok := model.ParsePolicyKind(v)
		if !ok {
			details = append(details, model.FieldError{Field: "policy", Message: "unknown policy " + strconv.Quote(v)})
		}
		opts.Policy = string(kind)
	}
	if len(details) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid query", details...))
		return
	}
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		respondInternal(w, reqID, err)
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}

	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		respondInternal(w, reqID, err)
		return
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
		return
	}
	respondOK(w, reqID, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteRun(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
			return
		}
		respondInternal(w, reqID, err)
		return
	}
	respondOK(w, reqID, map[string]string{"id": id, "status": "deleted"})
}
