// Package pokeapitest provides an in-process fake of the PokeAPI endpoints
// dex uses, for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/dex/internal/model"
)

// Server serves /pokemon, /pokemon/{name} and /type from fixtures.
type Server struct {
	*httptest.Server

	detailStatus map[string]int
	detailDelay  map[string]time.Duration
	pokemon      []model.Pokemon
	types        []string
	mu           sync.Mutex
	listStatus   int
	typesStatus  int
	typesLeft    int

	ListRequests   atomic.Int32
	DetailRequests atomic.Int32
	TypeRequests   atomic.Int32
}

// NewServer starts a fake PokeAPI serving pokemon and types. The server is
// closed when the test ends.
func NewServer(t testing.TB, pokemon []model.Pokemon, types []string) *Server {
	t.Helper()

	s := &Server{
		pokemon:      pokemon,
		types:        types,
		detailStatus: make(map[string]int),
		detailDelay:  make(map[string]time.Duration),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the value to configure as pokeapi.base_url.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2"
}

// FailList makes the collection endpoint answer with status.
func (s *Server) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
}

// FailTypes makes the type endpoint answer with status.
func (s *Server) FailTypes(status int) {
	s.FailTypesTimes(status, -1)
}

// FailTypesTimes makes the next n type requests answer with status; later
// requests succeed. A negative n fails every request.
func (s *Server) FailTypesTimes(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typesStatus = status
	s.typesLeft = n
}

// FailDetail makes the detail endpoint for name answer with status.
func (s *Server) FailDetail(name string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailStatus[name] = status
}

// DelayDetail holds the detail response for name for d.
func (s *Server) DelayDetail(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailDelay[name] = d
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v2")

	switch {
	case path == "/pokemon":
		s.ListRequests.Add(1)
		s.serveList(w, r)
	case strings.HasPrefix(path, "/pokemon/"):
		s.DetailRequests.Add(1)
		s.serveDetail(w, r, strings.Trim(strings.TrimPrefix(path, "/pokemon/"), "/"))
	case path == "/type":
		s.TypeRequests.Add(1)
		s.serveTypes(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.listStatus
	s.mu.Unlock()
	if status != 0 {
		http.Error(w, "list unavailable", status)
		return
	}

	limit := len(s.pokemon)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n < limit {
			limit = n
		}
	}

	results := make([]map[string]string, 0, limit)
	for _, p := range s.pokemon[:limit] {
		results = append(results, map[string]string{
			"name": p.Name,
			"url":  fmt.Sprintf("%s/pokemon/%s/", s.BaseURL(), p.Name),
		})
	}
	writeJSON(w, map[string]any{"count": len(s.pokemon), "next": nil, "results": results})
}

func (s *Server) serveDetail(w http.ResponseWriter, r *http.Request, name string) {
	s.mu.Lock()
	status := s.detailStatus[name]
	delay := s.detailDelay[name]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, "detail unavailable", status)
		return
	}

	for _, p := range s.pokemon {
		if p.Name != name {
			continue
		}
		types := make([]map[string]any, 0, len(p.Types))
		for i, t := range p.Types {
			types = append(types, map[string]any{
				"slot": i + 1,
				"type": map[string]string{"name": t, "url": s.BaseURL() + "/type/" + t + "/"},
			})
		}
		writeJSON(w, map[string]any{
			"id":      p.ID,
			"name":    p.Name,
			"weight":  p.Weight,
			"types":   types,
			"sprites": map[string]any{"front_default": p.Sprite},
		})
		return
	}
	http.NotFound(w, r)
}

func (s *Server) serveTypes(w http.ResponseWriter) {
	s.mu.Lock()
	status := s.typesStatus
	failing := status != 0 && s.typesLeft != 0
	if failing && s.typesLeft > 0 {
		s.typesLeft--
	}
	s.mu.Unlock()
	if failing {
		http.Error(w, "types unavailable", status)
		return
	}

	results := make([]map[string]string, 0, len(s.types))
	for _, t := range s.types {
		results = append(results, map[string]string{"name": t, "url": s.BaseURL() + "/type/" + t + "/"})
	}
	writeJSON(w, map[string]any{"count": len(s.types), "results": results})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
