// Package server exposes a session over a JSON HTTP API and a websocket stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"EconSim/internal/advisor"
	"EconSim/internal/calculator"
	"EconSim/internal/engine"
	"EconSim/internal/model"
	"EconSim/internal/session"
)

// Simulation is the part of *session.Session the server needs.
type Simulation interface {
	RunID() string
	State() model.EconomicState
	History() []model.EconomicState
	Status() model.Status
	Apply(lever model.Lever, magnitude float64) (model.EconomicState, error)
	Preview(lever model.Lever, magnitude float64) (model.EconomicState, error)
	Reset() model.EconomicState
	Commentary(ctx context.Context) (string, error)
	Subscribe() (<-chan session.Event, func())
}

const (
	maxBodyBytes       = 1 << 16
	defaultTrendWindow = 10
)

// Server routes HTTP requests to a Simulation.
type Server struct {
	sim      Simulation
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New builds the route table.
func New(sim Simulation) *Server {
	s := &Server{
		sim: sim,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/trends", s.handleTrends)
	s.mux.HandleFunc("POST /api/policy", s.handlePolicy)
	s.mux.HandleFunc("POST /api/preview", s.handlePreview)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("POST /api/commentary", s.handleCommentary)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("[INFO] HTTP server listening on %s", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	log.Println("[INFO] HTTP server stopped")
	return nil
}

type stateResponse struct {
	RunID  string              `json:"run_id"`
	Turn   int                 `json:"turn"`
	State  model.EconomicState `json:"state"`
	Status model.Status        `json:"status"`
}

type policyRequest struct {
	Lever     string  `json:"lever"`
	Magnitude float64 `json:"magnitude"`
}

type previewResponse struct {
	Current model.EconomicState `json:"current"`
	Next    model.EconomicState `json:"next"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) current() stateResponse {
	st := s.sim.Status()
	return stateResponse{RunID: s.sim.RunID(), Turn: st.Turn, State: s.sim.State(), Status: st}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current())
}

// handleHistory returns full states, or one indicator series with ?field=.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("field")
	if key == "" {
		writeJSON(w, http.StatusOK, s.sim.History())
		return
	}
	f, ok := calculator.FieldByKey(key)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown field %q", key)})
		return
	}
	writeJSON(w, http.StatusOK, calculator.Series(s.sim.History(), f))
}

type trendResponse struct {
	Field     string  `json:"field"`
	Label     string  `json:"label"`
	Unit      string  `json:"unit,omitempty"`
	Latest    float64 `json:"latest"`
	Average   float64 `json:"average"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
	Position  float64 `json:"position"`
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	window := defaultTrendWindow
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "window must be a positive integer"})
			return
		}
		window = n
	}
	trends := calculator.Summarize(s.sim.History(), window)
	out := make([]trendResponse, 0, len(trends))
	for _, t := range trends {
		out = append(out, trendResponse{
			Field: t.Field.Key, Label: t.Field.Label, Unit: t.Field.Unit,
			Latest: t.Latest, Average: t.Average, High: t.High, Low: t.Low,
			Change: t.Change, Direction: string(t.Direction), Position: t.Position,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Status())
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	lever, req, err := decodePolicy(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.sim.Apply(lever, req.Magnitude); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.current())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	lever, req, err := decodePolicy(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	cur := s.sim.State()
	next, err := s.sim.Preview(lever, req.Magnitude)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Current: cur, Next: next})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sim.Reset()
	writeJSON(w, http.StatusOK, s.current())
}

func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	text, err := s.sim.Commentary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func decodePolicy(w http.ResponseWriter, r *http.Request) (model.Lever, policyRequest, error) {
	var req policyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return "", req, &badRequest{err}
	}
	lever, err := engine.ParseLever(req.Lever)
	if err != nil {
		return "", req, err
	}
	return lever, req, nil
}

type badRequest struct{ err error }

func (b *badRequest) Error() string { return "decode request: " + b.err.Error() }
func (b *badRequest) Unwrap() error { return b.err }

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var br *badRequest
	var ue *advisor.UnavailableError
	switch {
	case errors.As(err, &br),
		errors.Is(err, engine.ErrInvalidLever),
		errors.Is(err, engine.ErrInvalidMagnitude):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrOutOfBounds):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &ue):
		status = http.StatusServiceUnavailable
		resp.Reason = string(ue.Reason)
	case errors.Is(err, advisor.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] request failed: %v", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}
