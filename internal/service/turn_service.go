package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tmckee/warfront/internal/repository"
	"github.com/tmckee/warfront/pkg/conquest"
)

// TurnService executes the per-turn operations a player can take: placing
// reinforcements, attacking, and fortifying. Every operation reads the full
// aggregate, runs the rules engine, and writes the result back.
type TurnService struct {
	store       store
	broadcaster Broadcaster
	runner      TurnTrigger
}

// NewTurnService creates a TurnService.
func NewTurnService(
	gameRepo repository.GameRepository,
	playRepo repository.PlayerRepository,
	terrRepo repository.TerritoryRepository,
	cache repository.GameCache,
	broadcaster Broadcaster,
	topology TopologyFunc,
) *TurnService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	if topology == nil {
		topology = ClassicTopology
	}
	return &TurnService{
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

// SetTurnTrigger configures CPU turn chaining after a human turn ends.
func (s *TurnService) SetTurnTrigger(runner TurnTrigger) {
	s.runner = runner
}

// PlaceArmies places reinforcement armies on a territory the player owns.
// When the pool reaches zero the game moves to the attack phase.
func (s *TurnService) PlaceArmies(ctx context.Context, gameID, playerID, territoryKey string, count int) (*conquest.GameState, error) {
	game, gs, err := s.store.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := gs.PlaceArmies(playerID, territoryKey, count); err != nil {
		s.sendError(gameID, playerID, err)
		return nil, err
	}

	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}
	s.broadcastState(gameID, gs)
	return gs, nil
}

// Attack resolves a single attack between two adjacent territories and
// broadcasts the dice outcome.
func (s *TurnService) Attack(ctx context.Context, gameID, playerID, fromKey, toKey string, attackingArmies int) (*conquest.AttackResult, error) {
	game, gs, err := s.store.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result, err := gs.Attack(playerID, fromKey, toKey, attackingArmies)
	if err != nil {
		s.sendError(gameID, playerID, err)
		return nil, err
	}

	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastGameEvent(gameID, "attack_resolved", result)
	if result.EliminatedPlayer != "" {
		log.Info().Str("gameId", gameID).Str("player", result.EliminatedPlayer).Msg("Player eliminated")
	}
	if gs.IsGameOver() {
		s.broadcastGameOver(gameID, gs)
	} else {
		s.broadcastState(gameID, gs)
	}
	return result, nil
}

// EndAttack moves the current player from the attack phase to fortify.
func (s *TurnService) EndAttack(ctx context.Context, gameID, playerID string) (*conquest.GameState, error) {
	game, gs, err := s.store.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := gs.EndAttack(playerID); err != nil {
		s.sendError(gameID, playerID, err)
		return nil, err
	}

	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}
	s.broadcastState(gameID, gs)
	return gs, nil
}

// Fortify moves armies between two adjacent owned territories and ends the
// player's turn.
func (s *TurnService) Fortify(ctx context.Context, gameID, playerID, fromKey, toKey string, amount int) (*conquest.GameState, error) {
	game, gs, err := s.store.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := gs.Fortify(playerID, fromKey, toKey, amount); err != nil {
		s.sendError(gameID, playerID, err)
		return nil, err
	}

	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastGameEvent(gameID, "fortify_performed", map[string]any{
		"player_id": playerID,
		"from":      fromKey,
		"to":        toKey,
		"amount":    amount,
	})
	s.finishTurn(ctx, gameID, gs)
	return gs, nil
}

// SkipFortify ends the player's turn without moving armies.
func (s *TurnService) SkipFortify(ctx context.Context, gameID, playerID string) (*conquest.GameState, error) {
	game, gs, err := s.store.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := gs.SkipFortify(playerID); err != nil {
		s.sendError(gameID, playerID, err)
		return nil, err
	}

	if err := s.store.saveState(ctx, game, gs); err != nil {
		return nil, err
	}
	s.finishTurn(ctx, gameID, gs)
	return gs, nil
}

// GetState returns the current game state for a game.
func (s *TurnService) GetState(ctx context.Context, gameID string) (*conquest.GameState, error) {
	_, gs, err := s.store.loadState(ctx, gameID)
	return gs, err
}

// finishTurn broadcasts the turn handover and, when the incoming player is a
// CPU, hands the game to the runner.
func (s *TurnService) finishTurn(ctx context.Context, gameID string, gs *conquest.GameState) {
	if gs.IsGameOver() {
		s.broadcastGameOver(gameID, gs)
		return
	}

	next := gs.CurrentPlayer()
	s.broadcaster.BroadcastGameEvent(gameID, "turn_ended", map[string]any{
		"turn_number":       gs.TurnNumber,
		"current_player_id": next.ID,
	})
	s.broadcastState(gameID, gs)

	if s.runner != nil && next.Type == conquest.PlayerCPU {
		s.runner.TriggerTurn(ctx, gameID)
	}
}

func (s *TurnService) broadcastState(gameID string, gs *conquest.GameState) {
	s.broadcaster.BroadcastGameEvent(gameID, "state_changed", gs)
}

func (s *TurnService) broadcastGameOver(gameID string, gs *conquest.GameState) {
	winner := gs.Player(gs.WinnerID)
	data := map[string]any{"winner_id": gs.WinnerID}
	if winner != nil {
		data["winner_name"] = winner.Name
	}
	log.Info().Str("gameId", gameID).Str("winnerId", gs.WinnerID).Msg("Game over")
	s.broadcaster.BroadcastGameEvent(gameID, "game_over", data)
}

func (s *TurnService) sendError(gameID, playerID string, err error) {
	s.broadcaster.BroadcastGameEvent(gameID, "error", map[string]any{
		"player_id": playerID,
		"message":   err.Error(),
	})
}
