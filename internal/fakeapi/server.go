// Package fakeapi is an in-memory stand-in for the workshop backend used
// by tests across the module.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/models"
)

const stamp = "2024-01-02T03:04:05Z"

// Request is a request observed by the server.
type Request struct {
	Method    string
	Path      string
	Body      []byte
	RequestID string
}

// Server serves /cfg, CRUD resources and the quote cost endpoint.
type Server struct {
	mu       sync.Mutex
	grids    map[string]cfg.Response
	records  map[string]map[int64]map[string]any
	nextID   int64
	fail     map[string]int
	requests []Request
	calc     func(models.CalculoInput) models.CalculoResultado
}

// New returns an empty server.
func New() *Server {
	return &Server{
		grids:   map[string]cfg.Response{},
		records: map[string]map[int64]map[string]any{},
		fail:    map[string]int{},
		nextID:  100,
		calc: func(in models.CalculoInput) models.CalculoResultado {
			peso := 0.0
			if in.PesoGramas != nil {
				peso = *in.PesoGramas
			}
			return models.CalculoResultado{ValorMateriaPrima: peso * 10, ValorServico: 50, ValorTotal: peso*10 + 50}
		},
	}
}

// Start serves s on a test server closed with t.
func (s *Server) Start(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// SetGrid registers the response of a query identifier.
func (s *Server) SetGrid(identifier string, resp cfg.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids[identifier] = resp
}

// Put stores a record under resource with the given id.
func (s *Server) Put(resource string, id int64, rec map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(resource, id, rec)
}

func (s *Server) put(resource string, id int64, rec map[string]any) {
	if s.records[resource] == nil {
		s.records[resource] = map[int64]map[string]any{}
	}
	cp := map[string]any{}
	for k, v := range rec {
		cp[k] = v
	}
	cp["id"] = id
	if _, ok := cp["criadoEm"]; !ok {
		cp["criadoEm"] = stamp
	}
	cp["atualizadoEm"] = stamp
	s.records[resource][id] = cp
}

// Record returns a stored record.
func (s *Server) Record(resource string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[resource][id]
	return r, ok
}

// Fail makes "METHOD /path" answer with status until cleared with 0.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.fail, method+" "+path)
		return
	}
	s.fail[method+" "+path] = status
}

// SetCalc replaces the cost formula.
func (s *Server) SetCalc(fn func(models.CalculoInput) models.CalculoResultado) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calc = fn
}

// Requests returns the requests observed so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/cfg", s.listCfg)
	r.Post("/cfg/{identifier}/query", s.query)
	r.Post("/orcamentos/calcular-custo", s.calcular)
	r.Get("/{resource}", s.list)
	r.Post("/{resource}", s.create)
	r.Get("/{resource}/{id}", s.get)
	r.Put("/{resource}/{id}", s.update)
	r.Delete("/{resource}/{id}", s.delete)
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body, RequestID: r.Header.Get("X-Request-ID")})
		status := s.fail[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listCfg(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]cfg.Summary, 0, len(s.grids))
	for id, g := range s.grids {
		out = append(out, cfg.Summary{Identifier: id, Description: id, PrimaryKeyColumn: g.PrimaryKey})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "identifier")
	s.mu.Lock()
	g, ok := s.grids[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown identifier", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) calcular(w http.ResponseWriter, r *http.Request) {
	var in models.CalculoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	fn := s.calc
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, fn(in))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.records[res]))
	for _, rec := range s.records[res] {
		out = append(out, rec)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	res, id, ok := params(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	rec, found := s.records[res][id]
	s.mu.Unlock()
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.put(res, id, rec)
	out := s.records[res][id]
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	res, id, ok := params(w, r)
	if !ok {
		return
	}
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, found := s.records[res][id]
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	rec["criadoEm"] = prev["criadoEm"]
	s.put(res, id, rec)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	res, id, ok := params(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.records[res][id]; !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	delete(s.records[res], id)
	w.WriteHeader(http.StatusNoContent)
}

func params(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return "", 0, false
	}
	return chi.URLParam(r, "resource"), id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
