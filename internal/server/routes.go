package server

import (
	"log"
	"net/http"

	"guesswho/internal/auth"
	"guesswho/internal/broadcast"
	"guesswho/internal/config"
	"guesswho/internal/db"
	"guesswho/internal/persons"
	"guesswho/internal/rooms"
	"guesswho/internal/stats"
	"guesswho/internal/wshub"
)

// Run wires the application together and serves until the listener fails.
// Without DATABASE_URL everything runs in-memory; without a JWT secret
// clients connect as guests.
func Run(cfg config.Config) error {
	var (
		catalog   persons.Catalog
		userStore auth.UserStore
		archiver  rooms.HistoryArchiver
		statsQ    *stats.Queries
	)

	// Optional database connection
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running in-memory)\n", err)
		} else if err := database.Migrate(); err != nil {
			log.Printf("[DB] Migration failed: %v (running in-memory)\n", err)
			database.Close()
		} else {
			personCatalog := db.NewPersonCatalog(database)
			if err := personCatalog.SeedIfEmpty(); err != nil {
				log.Printf("[DB] Seeding persons: %v\n", err)
			}
			catalog = personCatalog
			userStore = db.NewUserStore(database)
			archiver = db.NewHistoryStore(database)
			statsQ = stats.NewQueries(database)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running in-memory")
	}
	if catalog == nil {
		catalog = persons.NewMemoryCatalog(persons.Seed()...)
	}
	if userStore == nil {
		userStore = auth.NewMemoryStore()
	}

	var authSvc *auth.Service
	if cfg.JWTSecret != "" {
		authSvc = auth.NewService(userStore, cfg.JWTSecret, cfg.JWTExpiry)
	} else {
		log.Println("[Auth] JWT secret not set, accepting guest identities only")
	}

	broker := broadcast.NewBroker()
	registry := rooms.NewRegistry(rooms.Config{
		MaxPlayers: cfg.MaxPlayers,
		MaxGuesses: cfg.MaxGuesses,
	}, catalog, broker, archiver)

	srv := &Server{
		Rooms:   registry,
		Broker:  broker,
		Hub:     wshub.NewHub(),
		Catalog: catalog,
		Auth:    authSvc,
		Stats:   statsQ,
	}

	log.Printf("Server listening on http://%s\n", cfg.Addr())
	return http.ListenAndServe(cfg.Addr(), srv.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/persons/search", s.handleSearchPersons)
	mux.HandleFunc("POST /api/persons", s.handleAddPersons)
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("GET /api/history/recent", s.handleRecentGames)
	mux.HandleFunc("GET /api/stats/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}
