package oracle

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies accepted by the server.
const maxBodyBytes = 1 << 20

// Server exposes an Oracle over HTTP using the protocol spoken by Client.
type Server struct {
	oracle Oracle
	logger *zap.Logger
}

// NewServer creates a handler serving o. extra is mounted at /metrics when non-nil.
func NewServer(o Oracle, logger *zap.Logger, extra http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{oracle: o, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get(PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post(PathExpand, s.expand)
	r.Post(PathCluster, s.cluster)
	r.Post(PathExtract, s.extract)
	r.Post(PathTitle, s.title)
	if extra != nil {
		r.Handle("/metrics", extra)
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("oracle request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Source == "" || req.Count <= 0 {
		writeError(w, http.StatusBadRequest, "source and a positive count are required")
		return
	}
	phrases, err := s.oracle.Expand(r.Context(), req.Source, req.Count, req.Exclude)
	if err != nil {
		s.fail(w, "expand", err)
		return
	}
	writeJSON(w, http.StatusOK, phrasesResponse{Phrases: nonNil(phrases)})
}

func (s *Server) cluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if !decode(w, r, &req) {
		return
	}
	cats, err := s.oracle.Cluster(r.Context(), req.Items)
	if err != nil {
		s.fail(w, "cluster", err)
		return
	}
	if cats == nil {
		cats = []Category{}
	}
	writeJSON(w, http.StatusOK, clusterResponse{Categories: cats})
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decode(w, r, &req) {
		return
	}
	phrases, err := s.oracle.Extract(r.Context(), req.Text)
	if err != nil {
		s.fail(w, "extract", err)
		return
	}
	writeJSON(w, http.StatusOK, phrasesResponse{Phrases: nonNil(phrases)})
}

func (s *Server) title(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}
	title, err := s.oracle.SuggestTitle(r.Context(), req.Phrases)
	if err != nil {
		s.fail(w, "title", err)
		return
	}
	writeJSON(w, http.StatusOK, titleResponse{Title: title})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.logger.Warn("oracle call failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusBadGateway, Message(err))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
