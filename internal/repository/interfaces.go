package repository

import (
	"context"
	"encoding/json"

	"github.com/tmckee/warfront/internal/model"
)

// GameRepository defines game data operations.
type GameRepository interface {
	Create(ctx context.Context, name, mode string, dominationPercent, turnLimit int, mapName string) (*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	ListOpen(ctx context.Context) ([]model.Game, error)
	ListInProgress(ctx context.Context) ([]model.Game, error)
	SaveState(ctx context.Context, g *model.Game) error
	SetStarted(ctx context.Context, gameID string) error
	SetFinished(ctx context.Context, gameID, winnerID string) error
	Delete(ctx context.Context, gameID string) error
}

// PlayerRepository defines player data operations.
type PlayerRepository interface {
	Join(ctx context.Context, gameID, name, color, playerType, difficulty string, turnOrder int) (*model.Player, error)
	FindByID(ctx context.Context, id string) (*model.Player, error)
	ListByGame(ctx context.Context, gameID string) ([]model.Player, error)
	ListActiveByGame(ctx context.Context, gameID string) ([]model.Player, error)
	SetEliminated(ctx context.Context, playerID string) error
	Leave(ctx context.Context, playerID string) error
}

// TerritoryRepository defines territory data operations.
type TerritoryRepository interface {
	BulkCreate(ctx context.Context, territories []model.Territory) error
	ListByGame(ctx context.Context, gameID string) ([]model.Territory, error)
	ListByOwner(ctx context.Context, gameID, ownerID string) ([]model.Territory, error)
	FindByGameAndKey(ctx context.Context, gameID, key string) (*model.Territory, error)
	ListAttackCapable(ctx context.Context, gameID, ownerID string) ([]model.Territory, error)
	SaveAll(ctx context.Context, gameID string, territories []model.Territory) error
}

// GameCache defines live game state operations (Redis).
type GameCache interface {
	SetGameState(ctx context.Context, gameID string, state json.RawMessage) error
	GetGameState(ctx context.Context, gameID string) (json.RawMessage, error)
	DeleteGameData(ctx context.Context, gameID string) error
}
