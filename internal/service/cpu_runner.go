package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tmckee/warfront/internal/cpu"
	"github.com/tmckee/warfront/internal/model"
	"github.com/tmckee/warfront/internal/repository"
	"github.com/tmckee/warfront/pkg/conquest"
)

// maxAttacksPerTurn caps CPU aggression so a turn cannot loop forever on a
// strategy that keeps proposing attacks.
const maxAttacksPerTurn = 10

// CPURunner plays CPU turns asynchronously. Only one runner goroutine per
// game executes at a time; losers of the acquisition race return immediately
// because the winner will keep playing consecutive CPU turns itself.
type CPURunner struct {
	store       store
	broadcaster Broadcaster
	locks       *gameLocks
	thinkDelay  time.Duration
}

// NewCPURunner creates a CPURunner. thinkDelay paces CPU decisions so human
// observers can follow along; zero disables pacing.
func NewCPURunner(
	gameRepo repository.GameRepository,
	playRepo repository.PlayerRepository,
	terrRepo repository.TerritoryRepository,
	cache repository.GameCache,
	broadcaster Broadcaster,
	topology TopologyFunc,
	thinkDelay time.Duration,
) *CPURunner {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	if topology == nil {
		topology = ClassicTopology
	}
	return &CPURunner{
		store: store{
			gameRepo: gameRepo,
			playRepo: playRepo,
			terrRepo: terrRepo,
			cache:    cache,
			topology: topology,
		},
		broadcaster: broadcaster,
		locks:       newGameLocks(),
		thinkDelay:  thinkDelay,
	}
}

// TriggerTurn starts CPU turn execution for a game if it is not already
// running. The acquisition happens in the caller so concurrent triggers for
// the same game collapse into one runner.
func (r *CPURunner) TriggerTurn(ctx context.Context, gameID string) {
	release, ok := r.locks.TryAcquire(gameID)
	if !ok {
		return
	}

	// The runner outlives the triggering request.
	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer release()
		r.runLoop(runCtx, gameID)
	}()
}

// runLoop plays consecutive CPU turns until a human is up, the game ends, or
// an error occurs. Iteration rather than re-triggering keeps the lock held
// across the whole CPU streak.
func (r *CPURunner) runLoop(ctx context.Context, gameID string) {
	for {
		game, gs, err := r.store.loadState(ctx, gameID)
		if err != nil {
			log.Error().Err(err).Str("gameId", gameID).Msg("CPU runner failed to load game")
			return
		}
		if gs.IsGameOver() || gs.Status != conquest.StatusInProgress {
			return
		}

		current := gs.CurrentPlayer()
		if current == nil || current.Type != conquest.PlayerCPU {
			return
		}

		if err := r.playTurn(ctx, gameID, game, gs, current); err != nil {
			log.Error().Err(err).Str("gameId", gameID).Str("player", current.Name).Msg("CPU turn failed")
			return
		}
		if err := ctx.Err(); err != nil {
			return
		}
	}
}

// playTurn runs one CPU player's full turn: reinforcement, attacks, fortify.
// Progress is persisted after every engine operation, so a failure mid-turn
// leaves a consistent partially-played state.
func (r *CPURunner) playTurn(ctx context.Context, gameID string, game *model.Game, gs *conquest.GameState, player *conquest.Player) error {
	strategy := cpu.StrategyForDifficulty(player.Difficulty)
	log.Debug().Str("gameId", gameID).Str("player", player.Name).
		Str("strategy", strategy.Name()).Int("turn", gs.TurnNumber).Msg("CPU turn starting")

	if err := r.reinforce(ctx, gameID, game, gs, player, strategy); err != nil {
		return err
	}
	if err := r.attack(ctx, gameID, game, gs, player, strategy); err != nil {
		return err
	}
	if gs.IsGameOver() {
		r.broadcastGameOver(gameID, gs)
		return nil
	}
	return r.fortify(ctx, gameID, game, gs, player, strategy)
}

func (r *CPURunner) reinforce(ctx context.Context, gameID string, game *model.Game, gs *conquest.GameState, player *conquest.Player, strategy cpu.Strategy) error {
	for gs.Phase == conquest.PhaseReinforcement && gs.ReinforcementsRemaining > 0 {
		p := strategy.DecideReinforcement(gs, player.ID, gs.ReinforcementsRemaining)
		if p == nil {
			// Nowhere to place; dump the pool on any owned territory so the
			// phase can end. With zero owned territories the player should
			// already be eliminated and never reach here.
			keys := gs.TerritoriesOf(player.ID)
			if len(keys) == 0 {
				return conquest.ErrConquestInvariant
			}
			p = &cpu.Placement{TerritoryKey: keys[0], Armies: gs.ReinforcementsRemaining}
		}
		if err := gs.PlaceArmies(player.ID, p.TerritoryKey, p.Armies); err != nil {
			// A bad strategy decision must not stall the phase: dump the
			// remaining pool on the first owned territory instead.
			log.Warn().Err(err).Str("gameId", gameID).Str("territory", p.TerritoryKey).
				Msg("CPU placement rejected, placing remainder")
			keys := gs.TerritoriesOf(player.ID)
			if len(keys) == 0 {
				return conquest.ErrConquestInvariant
			}
			if err := gs.PlaceArmies(player.ID, keys[0], gs.ReinforcementsRemaining); err != nil {
				return err
			}
		}
		if err := r.commit(ctx, gameID, game, gs); err != nil {
			return err
		}
		if err := r.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *CPURunner) attack(ctx context.Context, gameID string, game *model.Game, gs *conquest.GameState, player *conquest.Player, strategy cpu.Strategy) error {
	for attempts := 0; gs.Phase == conquest.PhaseAttack && attempts < maxAttacksPerTurn; attempts++ {
		move := strategy.DecideAttack(gs, player.ID)
		if move == nil {
			break
		}
		result, err := gs.Attack(player.ID, move.From, move.To, move.Armies)
		if err != nil {
			// A rejected attack ends the sub-phase, not the turn.
			log.Warn().Err(err).Str("gameId", gameID).Str("from", move.From).
				Str("to", move.To).Msg("CPU attack rejected, ending attack phase")
			break
		}
		if err := r.commit(ctx, gameID, game, gs); err != nil {
			return err
		}
		r.broadcaster.BroadcastGameEvent(gameID, "attack_resolved", result)
		if gs.IsGameOver() {
			return nil
		}
		if err := r.pause(ctx); err != nil {
			return err
		}
	}

	if gs.Phase == conquest.PhaseAttack {
		if err := gs.EndAttack(player.ID); err != nil {
			return err
		}
		if err := r.commit(ctx, gameID, game, gs); err != nil {
			return err
		}
	}
	return nil
}

func (r *CPURunner) fortify(ctx context.Context, gameID string, game *model.Game, gs *conquest.GameState, player *conquest.Player, strategy cpu.Strategy) error {
	move := strategy.DecideFortify(gs, player.ID)
	if move != nil {
		if err := gs.Fortify(player.ID, move.From, move.To, move.Armies); err != nil {
			log.Warn().Err(err).Str("gameId", gameID).Str("from", move.From).
				Str("to", move.To).Msg("CPU fortify rejected, skipping")
			move = nil
		}
	}
	if move != nil {
		r.broadcaster.BroadcastGameEvent(gameID, "fortify_performed", map[string]any{
			"player_id": player.ID,
			"from":      move.From,
			"to":        move.To,
			"from_name": gs.Territories[move.From].Name,
			"to_name":   gs.Territories[move.To].Name,
			"amount":    move.Armies,
		})
	} else {
		if err := gs.SkipFortify(player.ID); err != nil {
			return err
		}
	}
	if err := r.commit(ctx, gameID, game, gs); err != nil {
		return err
	}

	if gs.IsGameOver() {
		r.broadcastGameOver(gameID, gs)
		return nil
	}
	s := gs.CurrentPlayer()
	r.broadcaster.BroadcastGameEvent(gameID, "turn_ended", map[string]any{
		"turn_number":       gs.TurnNumber,
		"current_player_id": s.ID,
	})
	return nil
}

// commit persists the aggregate and pushes the new state to clients.
func (r *CPURunner) commit(ctx context.Context, gameID string, game *model.Game, gs *conquest.GameState) error {
	if err := r.store.saveState(ctx, game, gs); err != nil {
		return err
	}
	r.broadcaster.BroadcastGameEvent(gameID, "state_changed", gs)
	return nil
}

func (r *CPURunner) broadcastGameOver(gameID string, gs *conquest.GameState) {
	winner := gs.Player(gs.WinnerID)
	data := map[string]any{"winner_id": gs.WinnerID}
	if winner != nil {
		data["winner_name"] = winner.Name
	}
	log.Info().Str("gameId", gameID).Str("winnerId", gs.WinnerID).Msg("Game over")
	r.broadcaster.BroadcastGameEvent(gameID, "game_over", data)
}

// pause waits the think delay, respecting cancellation.
func (r *CPURunner) pause(ctx context.Context) error {
	if r.thinkDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.thinkDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
