package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/juruen/digitpad/downsample"
	"github.com/juruen/digitpad/log"
	"github.com/juruen/digitpad/session"
	"github.com/juruen/digitpad/surface"
	"github.com/juruen/digitpad/version"
)

type ApiServer struct {
	session *session.Session
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type pointerRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Drawing bool    `json:"drawing"`
}

func NewApiServer(sess *session.Session) *ApiServer {
	return &ApiServer{session: sess}
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

func (s *ApiServer) writeDisplay(w http.ResponseWriter) {
	d, err := s.session.Display()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeSuccess(w, d)
}

func (s *ApiServer) decodePointer(w http.ResponseWriter, r *http.Request) (pointerRequest, bool) {
	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid pointer event"))
		return req, false
	}
	if !(surface.Point{X: req.X, Y: req.Y}).Finite() {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid pointer event: coordinates must be finite"))
		return req, false
	}
	return req, true
}

// POST /api/stroke/begin {"x":..,"y":..}
func (s *ApiServer) handleBegin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := s.decodePointer(w, r)
	if !ok {
		return
	}

	if err := s.session.BeginStroke(surface.Point{X: req.X, Y: req.Y}); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeSuccess(w, nil)
}

// POST /api/stroke/extend {"x":..,"y":..,"drawing":true}
func (s *ApiServer) handleExtend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := s.decodePointer(w, r)
	if !ok {
		return
	}

	if err := s.session.ExtendStroke(surface.Point{X: req.X, Y: req.Y}, req.Drawing); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeSuccess(w, nil)
}

// POST /api/stroke/end
func (s *ApiServer) handleEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.session.EndStroke(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeSuccess(w, nil)
}

// POST /api/clear
func (s *ApiServer) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.session.Clear(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeDisplay(w)
}

// POST /api/submit
func (s *ApiServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sub, err := s.session.Submit()
	switch errors.Cause(err) {
	case nil:
	case session.ErrWaiting, session.ErrCoolingDown:
		s.writeError(w, http.StatusConflict, err)
		return
	case session.ErrClosed:
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	default:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeSuccess(w, map[string]string{"id": sub.ID})
}

// GET /api/state
func (s *ApiServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	d, err := s.session.Display()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	res, err := s.session.LastResult()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	s.writeSuccess(w, map[string]interface{}{
		"display": d,
		"last":    res,
	})
}

// GET /api/sample
func (s *ApiServer) handleSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	smp, err := s.session.Sample()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeSuccess(w, smp)
}

// GET /api/preview.png
func (s *ApiServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	preview, err := s.session.Preview()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	var buf bytes.Buffer
	if err := downsample.WritePNG(&buf, preview); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// GET /api/version
func (s *ApiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, map[string]string{"version": version.Version})
}

func newServerMux(server *ApiServer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/stroke/begin", server.handleBegin)
	mux.HandleFunc("/api/stroke/extend", server.handleExtend)
	mux.HandleFunc("/api/stroke/end", server.handleEnd)
	mux.HandleFunc("/api/clear", server.handleClear)
	mux.HandleFunc("/api/submit", server.handleSubmit)
	mux.HandleFunc("/api/state", server.handleState)
	mux.HandleFunc("/api/sample", server.handleSample)
	mux.HandleFunc("/api/preview.png", server.handlePreview)
	mux.HandleFunc("/api/version", server.handleVersion)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
	<title>digitpad REST API</title>
</head>
<body>
	<h1>digitpad REST API</h1>
	<h2>Endpoints:</h2>
	<ul>
		<li>POST /api/stroke/begin - Pointer down</li>
		<li>POST /api/stroke/extend - Pointer move</li>
		<li>POST /api/stroke/end - Pointer up or leave</li>
		<li>POST /api/clear - Clear the canvas</li>
		<li>POST /api/submit - Submit the drawing</li>
		<li>GET /api/state - Guess and cooldown</li>
		<li>GET /api/sample - Current 784 value sample</li>
		<li>GET /api/preview.png - 28x28 preview</li>
		<li>GET /api/version - Get version</li>
	</ul>
</body>
</html>
		`)
	})

	return mux
}

// runServerMode serves the session until ctx is done.
func runServerMode(ctx context.Context, sess *session.Session, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: newServerMux(NewApiServer(sess)),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info.Printf("Starting HTTP server on port %s", port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
