package model

import "time"

// Game represents one game row. Phase, status, and mode values mirror the
// conquest package enums.
type Game struct {
	ID                      string     `json:"id"`
	Name                    string     `json:"name"`
	Status                  string     `json:"status"`
	Phase                   string     `json:"phase"`
	Mode                    string     `json:"mode"`
	DominationPercent       int        `json:"domination_percent,omitempty"`
	TurnLimit               int        `json:"turn_limit,omitempty"`
	CurrentPlayerIndex      int        `json:"current_player_index"`
	TurnNumber              int        `json:"turn_number"`
	ReinforcementsRemaining int        `json:"reinforcements_remaining"`
	WinnerID                string     `json:"winner_id,omitempty"`
	MapName                 string     `json:"map_name"`
	CreatedAt               time.Time  `json:"created_at"`
	StartedAt               *time.Time `json:"started_at,omitempty"`
	FinishedAt              *time.Time `json:"finished_at,omitempty"`
	Players                 []Player   `json:"players,omitempty"`
}

// Player represents a player's membership in a game.
type Player struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Type       string    `json:"type"` // human, cpu
	Difficulty string    `json:"difficulty,omitempty"`
	TurnOrder  int       `json:"turn_order"`
	Eliminated bool      `json:"eliminated"`
	JoinedAt   time.Time `json:"joined_at"`
}

// Territory represents one board position of a game. OwnerID is empty until
// territories are distributed at game start.
type Territory struct {
	ID           string   `json:"id"`
	GameID       string   `json:"game_id"`
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	ContinentKey string   `json:"continent_key"`
	OwnerID      string   `json:"owner_id,omitempty"`
	Armies       int      `json:"armies"`
	NeighborKeys []string `json:"neighbor_keys"`
}
