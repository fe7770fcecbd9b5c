// Package pokeapitest serves a deterministic in-memory PokeAPI for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

var names = map[int]string{
	1: "bulbasaur", 2: "ivysaur", 3: "venusaur", 4: "charmander", 5: "charmeleon",
	6: "charizard", 7: "squirtle", 8: "wartortle", 9: "blastoise", 25: "pikachu",
}

// Name is the name the server reports for id.
func Name(id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return "pokemon" + strconv.Itoa(id)
}

// TypesOf is the taxonomy the server reports for id. Every record also
// carries an unknown "shadow" type that clients must drop.
func TypesOf(id int) []pokemon.Type {
	all := pokemon.Types()
	primary := all[(id-1)%len(all)]
	if id%2 == 0 {
		return []pokemon.Type{primary, all[id%len(all)]}
	}
	return []pokemon.Type{primary}
}

type Server struct {
	*httptest.Server

	Total int

	mu       sync.Mutex
	failing  map[int]int
	delay    time.Duration
	requests atomic.Int64
	pages    atomic.Int64
}

// NewServer starts a fake API holding ids 1..total. It is closed when the
// test ends.
func NewServer(t testing.TB, total int) *Server {
	s := &Server{Total: total, failing: map[int]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", s.handleList)
	mux.HandleFunc("GET /pokemon/{id}/", s.handlePokemon)
	mux.HandleFunc("GET /pokemon-species/{id}/", s.handleSpecies)
	mux.HandleFunc("GET /generation/{id}/", s.handleGeneration)
	s.Server = httptest.NewServer(s.count(mux))
	t.Cleanup(s.Close)
	return s
}

// Fail makes every request for id answer with status.
func (s *Server) Fail(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = status
}

// SetDelay slows down every response.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) Requests() int64 { return s.requests.Load() }

func (s *Server) PageRequests() int64 { return s.pages.Load() }

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		delay := s.delay
		s.mu.Unlock()
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.pages.Add(1)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}
	results := []map[string]string{}
	for id := offset + 1; id <= offset+limit && id <= s.Total; id++ {
		results = append(results, map[string]string{
			"name": Name(id),
			"url":  fmt.Sprintf("%s/pokemon/%d/", s.URL, id),
		})
	}
	var next any
	if offset+limit < s.Total {
		next = fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", s.URL, limit, offset+limit)
	}
	writeJSON(w, map[string]any{
		"count":    s.Total,
		"next":     next,
		"previous": nil,
		"results":  results,
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > s.Total {
		http.NotFound(w, r)
		return 0, false
	}
	s.mu.Lock()
	status, failing := s.failing[id]
	s.mu.Unlock()
	if failing {
		http.Error(w, "failing on purpose", status)
		return 0, false
	}
	return id, true
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookup(w, r)
	if !ok {
		return
	}
	types := []map[string]any{}
	for i, t := range TypesOf(id) {
		types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": string(t)}})
	}
	types = append(types, map[string]any{"slot": 3, "type": map[string]string{"name": "shadow"}})
	writeJSON(w, map[string]any{
		"id":     id,
		"name":   Name(id),
		"weight": id * 10,
		"height": id,
		"types":  types,
		"stats": []map[string]any{
			{"base_stat": 45, "stat": map[string]string{"name": "hp"}},
			{"base_stat": 49, "stat": map[string]string{"name": "attack"}},
		},
		"moves": []map[string]any{
			{"move": map[string]string{"name": "tackle"}},
			{"move": map[string]string{"name": "growl"}},
			{"move": map[string]string{"name": "vine-whip"}},
		},
		"species": map[string]string{
			"name": Name(id),
			"url":  fmt.Sprintf("%s/pokemon-species/%d/", s.URL, id),
		},
	})
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"id":   id,
		"name": Name(id),
		"flavor_text_entries": []map[string]any{
			{"flavor_text": "Texte en\nfrançais.", "language": map[string]string{"name": "fr"}},
			{"flavor_text": Bio(id) + "\nsecond\fline", "language": map[string]string{"name": "en"}},
		},
		"generation": map[string]string{
			"name": "generation-i",
			"url":  fmt.Sprintf("%s/generation/%d/", s.URL, Generation(id)),
		},
	})
}

func (s *Server) handleGeneration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"id": id, "name": fmt.Sprintf("generation-%d", id)})
}

// Bio is the first line of the english flavor text for id.
func Bio(id int) string {
	return fmt.Sprintf("%s is number %d.", Name(id), id)
}

// Generation groups ids by 151.
func Generation(id int) int {
	return (id-1)/151 + 1
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
