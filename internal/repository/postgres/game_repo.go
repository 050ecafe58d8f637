package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmckee/warfront/internal/model"
)

// GameRepo handles game database operations.
type GameRepo struct {
	db      *sql.DB
	players *PlayerRepo
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db, players: NewPlayerRepo(db)}
}

// Create inserts a new game in waiting status.
func (r *GameRepo) Create(ctx context.Context, name, mode string, dominationPercent, turnLimit int, mapName string) (*model.Game, error) {
	var g model.Game
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO games (id, name, status, phase, mode, domination_percent, turn_limit, map_name)
		 VALUES ($1, $2, 'waiting', 'setup', $3, $4, $5, $6)
		 RETURNING id, name, status, phase, mode, domination_percent, turn_limit,
		           current_player_index, turn_number, reinforcements_remaining, map_name, created_at`,
		uuid.NewString(), name, mode, dominationPercent, turnLimit, mapName,
	).Scan(&g.ID, &g.Name, &g.Status, &g.Phase, &g.Mode, &g.DominationPercent, &g.TurnLimit,
		&g.CurrentPlayerIndex, &g.TurnNumber, &g.ReinforcementsRemaining, &g.MapName, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &g, nil
}

// FindByID returns a game by ID with its players, or nil if not found.
func (r *GameRepo) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	var winner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, status, phase, mode, domination_percent, turn_limit,
		        current_player_index, turn_number, reinforcements_remaining, winner_id,
		        map_name, created_at, started_at, finished_at
		 FROM games WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name, &g.Status, &g.Phase, &g.Mode, &g.DominationPercent, &g.TurnLimit,
		&g.CurrentPlayerIndex, &g.TurnNumber, &g.ReinforcementsRemaining, &winner,
		&g.MapName, &g.CreatedAt, &g.StartedAt, &g.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	g.WinnerID = winner.String

	players, err := r.players.ListByGame(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Players = players
	return &g, nil
}

// ListOpen returns games in waiting status, most recent first.
func (r *GameRepo) ListOpen(ctx context.Context) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, phase, mode, domination_percent, turn_limit, map_name, created_at
		 FROM games WHERE status = 'waiting' ORDER BY created_at DESC LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("list open games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.Phase, &g.Mode, &g.DominationPercent,
			&g.TurnLimit, &g.MapName, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListInProgress returns games currently being played.
func (r *GameRepo) ListInProgress(ctx context.Context) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, phase, mode, domination_percent, turn_limit, map_name, created_at
		 FROM games WHERE status = 'in_progress' ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list in-progress games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.Phase, &g.Mode, &g.DominationPercent,
			&g.TurnLimit, &g.MapName, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// SaveState writes the mutable turn bookkeeping of a game back to the row.
func (r *GameRepo) SaveState(ctx context.Context, g *model.Game) error {
	var winner any
	if g.WinnerID != "" {
		winner = g.WinnerID
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE games
		 SET status = $2, phase = $3, current_player_index = $4, turn_number = $5,
		     reinforcements_remaining = $6, winner_id = $7
		 WHERE id = $1`,
		g.ID, g.Status, g.Phase, g.CurrentPlayerIndex, g.TurnNumber, g.ReinforcementsRemaining, winner)
	if err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

// SetStarted marks a game as in progress.
func (r *GameRepo) SetStarted(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'in_progress', phase = 'reinforcement', started_at = now() WHERE id = $1`,
		gameID)
	if err != nil {
		return fmt.Errorf("set started: %w", err)
	}
	return nil
}

// SetFinished marks a game as finished with a winner and completion timestamp.
func (r *GameRepo) SetFinished(ctx context.Context, gameID, winnerID string) error {
	var winner any
	if winnerID != "" {
		winner = winnerID
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'finished', phase = 'game_over', winner_id = $2, finished_at = now() WHERE id = $1`,
		gameID, winner)
	if err != nil {
		return fmt.Errorf("set finished: %w", err)
	}
	return nil
}

// Delete removes a game and, via cascade, its players and territories.
func (r *GameRepo) Delete(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}
