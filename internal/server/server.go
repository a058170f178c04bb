// Package server exposes the verification pipeline over HTTP. Routes mirror
// the JSON contract the web clients consume.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sgribkov/newsvet/internal/classifier"
	"github.com/sgribkov/newsvet/internal/model"
	"github.com/sgribkov/newsvet/internal/pipeline"
)

// Verifier is the pipeline surface the server needs.
type Verifier interface {
	Verify(ctx context.Context, text string) (*model.Verification, error)
	LiveNews(ctx context.Context) ([]model.Headline, error)
	Classifier() classifier.Classifier
}

// Server is the HTTP front end over a pipeline.
type Server struct {
	pipe   Verifier
	router *mux.Router
	now    func() time.Time
}

// New creates the server and registers its routes.
func New(pipe Verifier) *Server {
	s := &Server{
		pipe:   pipe,
		router: mux.NewRouter(),
		now:    time.Now,
	}

	s.router.HandleFunc("/verify", s.handleVerify).Methods(http.MethodPost)
	s.router.HandleFunc("/verify-online", s.handleVerifyOnline).Methods(http.MethodPost)
	s.router.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	s.router.HandleFunc("/live-news", s.handleLiveNews).Methods(http.MethodGet)
	s.router.HandleFunc("/healthcheck", s.handleHealth).Methods(http.MethodGet)

	return s
}

// ServeHTTP makes the server usable as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

type verifyRequest struct {
	Text string `json:"text"`
}

// verifyResponse is the combined ML + online payload of POST /verify.
type verifyResponse struct {
	Text               string              `json:"text"`
	MLPrediction       *model.Prediction   `json:"ml_prediction"`
	OnlineVerification *model.Verification `json:"online_verification"`
	Timestamp          string              `json:"timestamp"`
}

// handleVerify runs the full verification and, when the classifier is
// configured, attaches its prediction. A classifier failure leaves the
// prediction null rather than failing the request.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	text, ok := s.claimText(w, r)
	if !ok {
		return
	}

	var prediction *model.Prediction
	if c := s.pipe.Classifier(); c != nil {
		if p, err := c.Predict(r.Context(), text); err == nil {
			prediction = p
		}
	}

	verification, err := s.pipe.Verify(r.Context(), text)
	if err != nil {
		writeVerifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Text:               text,
		MLPrediction:       prediction,
		OnlineVerification: verification,
		Timestamp:          s.now().Format(time.RFC3339),
	})
}

// handleVerifyOnline runs the source-based verification only.
func (s *Server) handleVerifyOnline(w http.ResponseWriter, r *http.Request) {
	text, ok := s.claimText(w, r)
	if !ok {
		return
	}

	verification, err := s.pipe.Verify(r.Context(), text)
	if err != nil {
		writeVerifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verification)
}

// handlePredict proxies the classifier directly. Without a configured
// classifier the endpoint reports service unavailable.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	text, ok := s.claimText(w, r)
	if !ok {
		return
	}

	c := s.pipe.Classifier()
	if c == nil {
		writeError(w, http.StatusServiceUnavailable, "Model not loaded")
		return
	}

	prediction, err := c.Predict(r.Context(), text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Text string `json:"text"`
		*model.Prediction
	}{Text: text, Prediction: prediction})
}

func (s *Server) handleLiveNews(w http.ResponseWriter, r *http.Request) {
	headlines, err := s.pipe.LiveNews(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"news":  headlines,
		"count": len(headlines),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// claimText decodes the request body and enforces the non-empty text rule.
func (s *Server) claimText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return "", false
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return "", false
	}
	return req.Text, true
}

// writeVerifyError maps pipeline errors onto HTTP statuses. Empty claim
// text is the caller's fault.
func writeVerifyError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrEmptyText) {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
