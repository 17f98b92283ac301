package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"guesswho/internal/auth"
	"guesswho/internal/broadcast"
	"guesswho/internal/persons"
	"guesswho/internal/rooms"
	"guesswho/internal/stats"
	"guesswho/internal/wshub"
)

// Server bundles the wired application services behind the HTTP and
// WebSocket handlers.
type Server struct {
	Rooms   *rooms.Registry
	Broker  *broadcast.Broker
	Hub     *wshub.Hub
	Catalog persons.Catalog
	Auth    *auth.Service  // nil when no JWT secret configured
	Stats   *stats.Queries // nil when no database configured
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Encoding response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.Auth == nil {
		writeError(w, http.StatusServiceUnavailable, "authentication is not configured")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch err := s.Auth.Register(req.Username, req.Password); {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "username and password are required")
	default:
		log.Printf("[HTTP] Register: %v\n", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.Auth == nil {
		writeError(w, http.StatusServiceUnavailable, "authentication is not configured")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.Auth.Login(req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	default:
		log.Printf("[HTTP] Login: %v\n", err)
		writeError(w, http.StatusInternalServerError, "login failed")
	}
}

func (s *Server) handleSearchPersons(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}
	found, err := s.Catalog.Search(name)
	if err != nil {
		log.Printf("[HTTP] Person search: %v\n", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleAddPersons(w http.ResponseWriter, r *http.Request) {
	var batch []persons.Person
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(batch) == 0 {
		writeError(w, http.StatusBadRequest, "at least one person is required")
		return
	}
	for _, p := range batch {
		if p.Name == "" {
			writeError(w, http.StatusBadRequest, "every person needs a name")
			return
		}
	}

	added, err := s.Catalog.Add(batch...)
	if err != nil {
		log.Printf("[HTTP] Adding persons: %v\n", err)
		writeError(w, http.StatusInternalServerError, "adding persons failed")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	phase := rooms.Phase(r.URL.Query().Get("phase"))
	switch phase {
	case "", rooms.PhaseWaiting, rooms.PhasePlaying, rooms.PhaseEnded:
	default:
		writeError(w, http.StatusBadRequest, "unknown phase")
		return
	}
	writeJSON(w, http.StatusOK, s.Rooms.List(phase))
}

// limitParam reads ?limit= with a default and an upper bound.
func limitParam(r *http.Request, def, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return min(n, max)
}

func (s *Server) handleRecentGames(w http.ResponseWriter, r *http.Request) {
	if s.Stats == nil {
		writeError(w, http.StatusServiceUnavailable, "history is not available without a database")
		return
	}
	recaps, err := s.Stats.RecentGames(limitParam(r, 20, 100))
	if err != nil {
		log.Printf("[HTTP] Recent games: %v\n", err)
		writeError(w, http.StatusInternalServerError, "loading history failed")
		return
	}
	writeJSON(w, http.StatusOK, recaps)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.Stats == nil {
		writeError(w, http.StatusServiceUnavailable, "stats are not available without a database")
		return
	}
	entries, err := s.Stats.Leaderboard(limitParam(r, 10, 100))
	if err != nil {
		log.Printf("[HTTP] Leaderboard: %v\n", err)
		writeError(w, http.StatusInternalServerError, "loading leaderboard failed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
