// Package transporthttp implements spec.md §6's single external
// interface: POST /search. It decodes the request, dispatches to
// internal/coordinator, and encodes the response — no business logic
// lives here.
package transporthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/coordinator"
	"github.com/foodsearch/fuzzyrank/internal/geo"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// Server wraps a coordinator behind an http.Handler.
type Server struct {
	coord *coordinator.Coordinator
	cfg   *config.Config
	log   *zap.Logger
}

// New builds a Server.
func New(coord *coordinator.Coordinator, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{coord: coord, cfg: cfg, log: log}
}

// Handler returns the mux the server should be run behind.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	return mux
}

// Serve listens on addr and blocks serving Handler().
func (s *Server) Serve(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("transporthttp: listen %s: %w", addr, err)
	}
	s.log.Info("listening", zap.String("addr", listener.Addr().String()))
	return http.Serve(listener, s.Handler())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.IndexName == "" {
		writeError(w, http.StatusBadRequest, "index_name is required")
		return
	}

	query, err := decodeQuery(req.QueryData)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query_data: "+err.Error())
		return
	}

	opts := req.Options.Normalize()

	resp, err := s.coord.Search(r.Context(), req.IndexName, query, opts, req.UserID)
	if err != nil {
		s.log.Info("search request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp.Hits = paginate(resp.Hits, s.cfg, opts)
	resp.Total = len(resp.Hits)

	writeJSON(w, resp)
}

// decodeQuery interprets the polymorphic query_data field: absent/null,
// a bare string, or a structured QueryData object (spec.md §6).
func decodeQuery(raw []byte) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var asQuery models.QueryData
	if err := json.Unmarshal(raw, &asQuery); err != nil {
		return nil, errors.New("must be null, a string, or a QueryData object")
	}
	return asQuery, nil
}

// paginate applies the geo-dispersion pass and then offset/per_page
// pagination, both of which are external to the ranker per spec.md §9.
// Dispersion runs on every response; there is no option to turn it off.
func paginate(hits []models.ScoredHit, cfg *config.Config, opts models.SearchOptions) []models.ScoredHit {
	hits = geo.Disperse(hits, cfg.GeoDispersionGridSize)

	if opts.Offset >= len(hits) {
		return []models.ScoredHit{}
	}
	end := opts.Offset + opts.PerPage
	if end > len(hits) {
		end = len(hits)
	}
	return hits[opts.Offset:end]
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
