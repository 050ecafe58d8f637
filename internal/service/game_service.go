package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tmckee/warfront/internal/model"
	"github.com/tmckee/warfront/internal/repository"
	"github.com/tmckee/warfront/pkg/conquest"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrGameNotWaiting  = errors.New("game is not in waiting status")
	ErrGameFull        = errors.New("game already has the maximum number of players")
	ErrNotEnough       = errors.New("need at least 2 players to start")
	ErrInvalidMode     = errors.New("invalid game mode")
	ErrInvalidModeArgs = errors.New("invalid game mode parameters")
)

// colorPalette is the fixed set of player colors; its length caps players per game.
var colorPalette = []string{"red", "blue", "green", "yellow", "purple", "orange"}

// TurnTrigger starts CPU turn execution for a game. Implemented by CPURunner.
type TurnTrigger interface {
	TriggerTurn(ctx context.Context, gameID string)
}

// GameService handles game lifecycle operations: lobby, joining, start.
type GameService struct {
	store       store
	broadcaster Broadcaster
	runner      TurnTrigger
}

// NewGameService creates a GameService.
func NewGameService(
	gameRepo repository.GameRepository,
	playRepo repository.PlayerRepository,
	terrRepo repository.TerritoryRepository,
	cache repository.GameCache,
	broadcaster Broadcaster,
	topology TopologyFunc,
) *GameService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	if topology == nil {
		topology = ClassicTopology
	}
	return &GameService{
		store: store{
			gameRepo: gameRepo,
			playRepo: playRepo,
			terrRepo: terrRepo,
			cache:    cache,
			topology: topology,
		},
		broadcaster: broadcaster,
	}
}

// SetTurnTrigger configures CPU turn chaining after game start.
func (s *GameService) SetTurnTrigger(runner TurnTrigger) {
	s.runner = runner
}

// CreateGame creates a new game in waiting status and fills the requested
// number of CPU seats.
func (s *GameService) CreateGame(ctx context.Context, name, mode string, dominationPercent, turnLimit int, mapName string, cpuCount int, cpuDifficulty string) (*model.Game, error) {
	switch conquest.Mode(mode) {
	case conquest.ModeClassic:
	case conquest.ModeDomination:
		if dominationPercent < 1 || dominationPercent > 100 {
			return nil, ErrInvalidModeArgs
		}
	case conquest.ModeTurnLimit:
		if turnLimit < 1 {
			return nil, ErrInvalidModeArgs
		}
	default:
		return nil, ErrInvalidMode
	}
	if cpuCount < 0 || cpuCount >= len(colorPalette) {
		return nil, ErrGameFull
	}
	if cpuDifficulty == "" {
		cpuDifficulty = string(conquest.DifficultyMedium)
	}
	if mapName == "" {
		mapName = "classic"
	}
	if _, err := s.store.topology(mapName); err != nil {
		return nil, err
	}

	game, err := s.store.gameRepo.Create(ctx, name, mode, dominationPercent, turnLimit, mapName)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= cpuCount; i++ {
		cpuName := fmt.Sprintf("CPU %d", i)
		if _, err := s.store.playRepo.Join(ctx, game.ID, cpuName, colorPalette[i-1],
			string(conquest.PlayerCPU), cpuDifficulty, i-1); err != nil {
			return nil, fmt.Errorf("seat cpu %d: %w", i, err)
		}
	}

	return s.store.gameRepo.FindByID(ctx, game.ID)
}

// JoinGame adds a human player to a waiting game, assigning the next free
// color and turn order slot.
func (s *GameService) JoinGame(ctx context.Context, gameID, name string) (*model.Player, error) {
	game, err := s.store.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != string(conquest.StatusWaiting) {
		return nil, ErrGameNotWaiting
	}
	if len(game.Players) >= len(colorPalette) {
		return nil, ErrGameFull
	}

	used := make(map[string]bool)
	for _, p := range game.Players {
		used[p.Color] = true
	}
	color := ""
	for _, c := range colorPalette {
		if !used[c] {
			color = c
			break
		}
	}

	player, err := s.store.playRepo.Join(ctx, gameID, name, color,
		string(conquest.PlayerHuman), "", len(game.Players))
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastGameEvent(gameID, "player_joined", map[string]any{
		"player_id": player.ID,
		"name":      player.Name,
		"color":     player.Color,
	})
	return player, nil
}

// LeaveGame removes a player from a waiting game.
func (s *GameService) LeaveGame(ctx context.Context, gameID, playerID string) error {
	game, err := s.store.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != string(conquest.StatusWaiting) {
		return ErrGameNotWaiting
	}

	var player *model.Player
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			player = &game.Players[i]
			break
		}
	}
	if player == nil {
		return ErrPlayerNotFound
	}

	if err := s.store.playRepo.Leave(ctx, playerID); err != nil {
		return err
	}
	s.broadcaster.BroadcastGameEvent(gameID, "player_left", map[string]any{
		"player_id": player.ID,
		"name":      player.Name,
	})
	return nil
}

// StartGame builds the board from the topology, distributes territories, and
// begins the first player's reinforcement phase. If the first player is a CPU
// its turn is triggered immediately.
func (s *GameService) StartGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.store.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != string(conquest.StatusWaiting) {
		return nil, ErrGameNotWaiting
	}
	if len(game.Players) < 2 {
		return nil, ErrNotEnough
	}

	topo, err := s.store.topology(game.MapName)
	if err != nil {
		return nil, err
	}

	players := make([]conquest.Player, 0, len(game.Players))
	for _, p := range game.Players {
		players = append(players, conquest.Player{
			ID:         p.ID,
			Name:       p.Name,
			Color:      p.Color,
			Type:       conquest.PlayerType(p.Type),
			Difficulty: conquest.Difficulty(p.Difficulty),
			TurnOrder:  p.TurnOrder,
		})
	}

	gs := conquest.NewGameState(topo, players, conquest.Mode(game.Mode), game.DominationPercent, game.TurnLimit)
	gs.DistributeTerritories()
	if err := gs.Start(); err != nil {
		return nil, err
	}

	if err := s.store.terrRepo.BulkCreate(ctx, territoriesToModel(gameID, gs)); err != nil {
		return nil, err
	}
	if err := s.store.gameRepo.SetStarted(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}

	log.Info().Str("gameId", gameID).Int("players", len(players)).
		Str("mode", game.Mode).Str("map", game.MapName).Msg("Game started")
	s.broadcaster.BroadcastGameEvent(gameID, "state_changed", map[string]any{
		"status":            string(gs.Status),
		"phase":             string(gs.Phase),
		"turn_number":       gs.TurnNumber,
		"current_player_id": gs.CurrentPlayer().ID,
	})

	if s.runner != nil && gs.CurrentPlayer().Type == conquest.PlayerCPU {
		s.runner.TriggerTurn(ctx, gameID)
	}

	return s.store.gameRepo.FindByID(ctx, gameID)
}

// GetGame returns a game by ID.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.store.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListOpenGames returns joinable games.
func (s *GameService) ListOpenGames(ctx context.Context) ([]model.Game, error) {
	return s.store.gameRepo.ListOpen(ctx)
}
