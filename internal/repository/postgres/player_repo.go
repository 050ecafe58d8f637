package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmckee/warfront/internal/model"
)

// PlayerRepo handles player database operations.
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a PlayerRepo.
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Join inserts a new player into a game.
func (r *PlayerRepo) Join(ctx context.Context, gameID, name, color, playerType, difficulty string, turnOrder int) (*model.Player, error) {
	var p model.Player
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO players (id, game_id, name, color, type, difficulty, turn_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, game_id, name, color, type, difficulty, turn_order, eliminated, joined_at`,
		uuid.NewString(), gameID, name, color, playerType, difficulty, turnOrder,
	).Scan(&p.ID, &p.GameID, &p.Name, &p.Color, &p.Type, &p.Difficulty, &p.TurnOrder, &p.Eliminated, &p.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("join player: %w", err)
	}
	return &p, nil
}

// FindByID returns a player by ID, or nil if not found.
func (r *PlayerRepo) FindByID(ctx context.Context, id string) (*model.Player, error) {
	var p model.Player
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, name, color, type, difficulty, turn_order, eliminated, joined_at
		 FROM players WHERE id = $1`, id,
	).Scan(&p.ID, &p.GameID, &p.Name, &p.Color, &p.Type, &p.Difficulty, &p.TurnOrder, &p.Eliminated, &p.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find player: %w", err)
	}
	return &p, nil
}

// ListByGame returns the players of a game in turn order.
func (r *PlayerRepo) ListByGame(ctx context.Context, gameID string) ([]model.Player, error) {
	return r.list(ctx,
		`SELECT id, game_id, name, color, type, difficulty, turn_order, eliminated, joined_at
		 FROM players WHERE game_id = $1 ORDER BY turn_order`, gameID)
}

// ListActiveByGame returns the non-eliminated players of a game in turn order.
func (r *PlayerRepo) ListActiveByGame(ctx context.Context, gameID string) ([]model.Player, error) {
	return r.list(ctx,
		`SELECT id, game_id, name, color, type, difficulty, turn_order, eliminated, joined_at
		 FROM players WHERE game_id = $1 AND eliminated = false ORDER BY turn_order`, gameID)
}

func (r *PlayerRepo) list(ctx context.Context, query string, args ...any) ([]model.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.GameID, &p.Name, &p.Color, &p.Type, &p.Difficulty,
			&p.TurnOrder, &p.Eliminated, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// SetEliminated marks a player as eliminated. The flag is one-way.
func (r *PlayerRepo) SetEliminated(ctx context.Context, playerID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE players SET eliminated = true WHERE id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("set eliminated: %w", err)
	}
	return nil
}

// Leave removes a player from a waiting game.
func (r *PlayerRepo) Leave(ctx context.Context, playerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("leave player: %w", err)
	}
	return nil
}
