package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tmckee/warfront/internal/model"
)

// TerritoryRepo handles territory database operations.
type TerritoryRepo struct {
	db *sql.DB
}

// NewTerritoryRepo creates a TerritoryRepo.
func NewTerritoryRepo(db *sql.DB) *TerritoryRepo {
	return &TerritoryRepo{db: db}
}

// BulkCreate inserts the full territory set of a game inside one transaction.
func (r *TerritoryRepo) BulkCreate(ctx context.Context, territories []model.Territory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO territories (id, game_id, key, name, continent_key, owner_id, armies, neighbor_keys)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return fmt.Errorf("prepare bulk create: %w", err)
	}
	defer stmt.Close()

	for _, t := range territories {
		var owner any
		if t.OwnerID != "" {
			owner = t.OwnerID
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), t.GameID, t.Key, t.Name,
			t.ContinentKey, owner, t.Armies, pq.Array(t.NeighborKeys)); err != nil {
			return fmt.Errorf("insert territory %s: %w", t.Key, err)
		}
	}
	return tx.Commit()
}

// ListByGame returns every territory of a game ordered by key.
func (r *TerritoryRepo) ListByGame(ctx context.Context, gameID string) ([]model.Territory, error) {
	return r.list(ctx,
		`SELECT id, game_id, key, name, continent_key, owner_id, armies, neighbor_keys
		 FROM territories WHERE game_id = $1 ORDER BY key`, gameID)
}

// ListByOwner returns the territories owned by a player, ordered by key.
func (r *TerritoryRepo) ListByOwner(ctx context.Context, gameID, ownerID string) ([]model.Territory, error) {
	return r.list(ctx,
		`SELECT id, game_id, key, name, continent_key, owner_id, armies, neighbor_keys
		 FROM territories WHERE game_id = $1 AND owner_id = $2 ORDER BY key`, gameID, ownerID)
}

// FindByGameAndKey returns one territory by its topology key, or nil.
func (r *TerritoryRepo) FindByGameAndKey(ctx context.Context, gameID, key string) (*model.Territory, error) {
	var t model.Territory
	var owner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, key, name, continent_key, owner_id, armies, neighbor_keys
		 FROM territories WHERE game_id = $1 AND key = $2`, gameID, key,
	).Scan(&t.ID, &t.GameID, &t.Key, &t.Name, &t.ContinentKey, &owner, &t.Armies, pq.Array(&t.NeighborKeys))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find territory: %w", err)
	}
	t.OwnerID = owner.String
	return &t, nil
}

// ListAttackCapable returns territories a player can attack from: owned,
// more than one army, at least one neighbor held by someone else.
func (r *TerritoryRepo) ListAttackCapable(ctx context.Context, gameID, ownerID string) ([]model.Territory, error) {
	return r.list(ctx,
		`SELECT t.id, t.game_id, t.key, t.name, t.continent_key, t.owner_id, t.armies, t.neighbor_keys
		 FROM territories t
		 WHERE t.game_id = $1 AND t.owner_id = $2 AND t.armies > 1
		   AND EXISTS (
		     SELECT 1 FROM territories n
		     WHERE n.game_id = t.game_id AND n.key = ANY(t.neighbor_keys)
		       AND (n.owner_id IS NULL OR n.owner_id <> t.owner_id)
		   )
		 ORDER BY t.key`, gameID, ownerID)
}

// SaveAll writes ownership and army counts for every territory of a game
// inside one transaction.
func (r *TerritoryRepo) SaveAll(ctx context.Context, gameID string, territories []model.Territory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save territories: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE territories SET owner_id = $3, armies = $4 WHERE game_id = $1 AND key = $2`)
	if err != nil {
		return fmt.Errorf("prepare save territories: %w", err)
	}
	defer stmt.Close()

	for _, t := range territories {
		var owner any
		if t.OwnerID != "" {
			owner = t.OwnerID
		}
		if _, err := stmt.ExecContext(ctx, gameID, t.Key, owner, t.Armies); err != nil {
			return fmt.Errorf("save territory %s: %w", t.Key, err)
		}
	}
	return tx.Commit()
}

func (r *TerritoryRepo) list(ctx context.Context, query string, args ...any) ([]model.Territory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list territories: %w", err)
	}
	defer rows.Close()

	var territories []model.Territory
	for rows.Next() {
		var t model.Territory
		var owner sql.NullString
		if err := rows.Scan(&t.ID, &t.GameID, &t.Key, &t.Name, &t.ContinentKey, &owner,
			&t.Armies, pq.Array(&t.NeighborKeys)); err != nil {
			return nil, fmt.Errorf("scan territory: %w", err)
		}
		t.OwnerID = owner.String
		territories = append(territories, t)
	}
	return territories, rows.Err()
}
