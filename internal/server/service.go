package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Gargablegar/AutoChessBattler/internal/config"
	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

// Service binds the room manager to the HTTP and websocket surface.
type Service struct {
	manager *Manager
	config  *config.Config
}

func NewService(cfg *config.Config) *Service {
	opts := game.Options{
		BoardSize:          cfg.Game.BoardSize,
		FrontlineDistance:  cfg.Game.FrontlineDistance,
		AutoTurns:          cfg.Game.AutoTurns,
		StartingPoints:     cfg.Game.StartingPoints,
		PointsPerTurn:      cfg.Game.PointsPerTurn,
		PlaceStartingKings: true,
	}
	return &Service{
		manager: NewManager(opts),
		config:  cfg,
	}
}

// Router wires the routes: a health probe, a room listing, and the
// websocket endpoint clients join through.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()

	// Add CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.HealthHandler).Methods("GET")
	api.HandleFunc("/rooms", s.RoomsHandler).Methods("GET")
	api.HandleFunc("/rooms/{game_id}/frontline", s.FrontlineHandler).Methods("GET")

	router.HandleFunc("/ws", s.WebSocketHandler)

	return router
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "ok",
		"board_size":     s.config.Game.BoardSize,
		"movement_delay": s.config.Game.MovementDelay,
	})
}

// FrontlineHandler returns the current placement zones for one room, for
// clients that highlight where each color may place pieces.
func (s *Service) FrontlineHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["game_id"]
	room, ok := s.manager.Get(gameID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	zones := room.FrontlineZones()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"game_id": room.ID(),
		"white":   zones[game.White],
		"black":   zones[game.Black],
	})
}

type roomInfo struct {
	GameID  string `json:"game_id"`
	Clients int    `json:"clients"`
}

func (s *Service) RoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms := s.manager.Rooms()
	out := make([]roomInfo, 0, len(rooms))
	for id, clients := range rooms {
		out = append(out, roomInfo{GameID: id, Clients: clients})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
