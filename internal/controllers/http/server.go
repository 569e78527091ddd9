package httpctrl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/ports"
	"github.com/Agrid-Dev/iceflow/internal/report"
)

type Server struct {
	svc      ports.PanelService
	calc     ports.Calculator
	srv      *http.Server
	deviceID string
	log      *zap.Logger
}

// New returns a runnable server.
func New(svc ports.PanelService, calc ports.Calculator, addr string, deviceID string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	s := &Server{svc: svc, calc: calc, deviceID: deviceID, log: log.Named("http")}

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/options", s.handleOptions)

	// Write: one endpoint per panel input
	mux.HandleFunc("POST /v1/variant", s.handlePostVariant)
	mux.HandleFunc("POST /v1/start_temperature", s.handlePostStartTemperature)
	mux.HandleFunc("POST /v1/target_temperature", s.handlePostTargetTemperature)
	mux.HandleFunc("POST /v1/container", s.handlePostContainer)
	mux.HandleFunc("POST /v1/rotation_speed", s.handlePostRotationSpeed)
	mux.HandleFunc("POST /v1/ice_profile", s.handlePostIceProfile)
	mux.HandleFunc("POST /v1/salt_level", s.handlePostSaltLevel)

	// Stateless computation
	mux.HandleFunc("POST /v1/compute", s.handleCompute)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ---- Handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	s.respondSnapshot(w)
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report.NewOptions(s.calc.Options()))
}

func (s *Server) handlePostVariant(w http.ResponseWriter, r *http.Request) {
	// body: {"value": "newton"}
	postValue(s, w, r, func(v string) error {
		variant, err := cooling.ParseVariant(v)
		if err != nil {
			return err
		}
		return s.svc.SetVariant(variant)
	})
}

func (s *Server) handlePostStartTemperature(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetStartTemperature)
}

func (s *Server) handlePostTargetTemperature(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetTargetTemperature)
}

func (s *Server) handlePostContainer(w http.ResponseWriter, r *http.Request) {
	// body: {"value": "500ml"}
	postValue(s, w, r, func(v string) error {
		c, err := cooling.ParseContainerSize(v)
		if err != nil {
			return err
		}
		return s.svc.SetContainer(c)
	})
}

func (s *Server) handlePostRotationSpeed(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetRotationSpeed)
}

func (s *Server) handlePostIceProfile(w http.ResponseWriter, r *http.Request) {
	// body: {"value": "crushed"}
	postValue(s, w, r, func(v string) error {
		p, err := cooling.ParseIceProfile(v)
		if err != nil {
			return err
		}
		return s.svc.SetIceProfile(p)
	})
}

func (s *Server) handlePostSaltLevel(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetSaltLevel)
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req report.ParametersDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	v, p, err := req.Decode()
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.calc.Compute(v, p)
	if err != nil {
		s.log.Debug("compute rejected", zap.Error(err))
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	dto := report.NewSnapshot("", v, p, res, nil)

	// ?curve_step=5s adds temperature samples when the target is reached.
	if q := r.URL.Query().Get("curve_step"); q != "" {
		step, err := time.ParseDuration(q)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid curve_step")
			return
		}
		points, err := cooling.Curve(res, p.StartTemperature, p.TargetTemperature, step)
		switch {
		case errors.Is(err, cooling.ErrInvalidStep):
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		case err == nil:
			dto.Curve = report.NewCurve(points)
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// ---- generic helpers ----
func (s *Server) respondSnapshot(w http.ResponseWriter) {
	snap := s.svc.Get()
	res, err := s.svc.Result()
	writeJSON(w, http.StatusOK, report.NewSnapshot(s.deviceID, snap.Variant, snap.Parameters, res, err))
}

func postValue[T any](s *Server, w http.ResponseWriter, r *http.Request, apply func(T) error) {
	dec := json.NewDecoder(r.Body)
	var req struct {
		Value *T `json:"value"`
	}
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil {
		writeErr(w, http.StatusBadRequest, "missing field 'value'")
		return
	}

	if err := apply(*req.Value); err != nil {
		s.log.Debug("write rejected", zap.String("path", r.URL.Path), zap.Error(err))
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondSnapshot(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
