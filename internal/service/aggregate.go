package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tmckee/warfront/internal/model"
	"github.com/tmckee/warfront/internal/repository"
	"github.com/tmckee/warfront/pkg/conquest"
)

// TopologyFunc resolves a map name to its static topology. The default
// provider only knows the built-in classic map.
type TopologyFunc func(name string) (*conquest.Topology, error)

// ClassicTopology is the default TopologyFunc: the embedded classic world map.
func ClassicTopology(name string) (*conquest.Topology, error) {
	if name == "" || name == "classic" {
		return conquest.ClassicMap(), nil
	}
	return nil, fmt.Errorf("unknown map %q", name)
}

// stateFromModel assembles the in-memory game state from persisted rows and
// the static topology. Continent definitions come from the topology; rows
// carry only ownership and army counts.
func stateFromModel(g *model.Game, territories []model.Territory, topo *conquest.Topology) *conquest.GameState {
	players := make([]conquest.Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, conquest.Player{
			ID:         p.ID,
			Name:       p.Name,
			Color:      p.Color,
			Type:       conquest.PlayerType(p.Type),
			Difficulty: conquest.Difficulty(p.Difficulty),
			TurnOrder:  p.TurnOrder,
			Eliminated: p.Eliminated,
		})
	}

	gs := conquest.NewGameState(topo, players, conquest.Mode(g.Mode), g.DominationPercent, g.TurnLimit)
	gs.Status = conquest.Status(g.Status)
	gs.Phase = conquest.Phase(g.Phase)
	gs.CurrentPlayerIndex = g.CurrentPlayerIndex
	gs.TurnNumber = g.TurnNumber
	gs.ReinforcementsRemaining = g.ReinforcementsRemaining
	gs.WinnerID = g.WinnerID

	for _, row := range territories {
		t, ok := gs.Territories[row.Key]
		if !ok {
			continue
		}
		t.OwnerID = row.OwnerID
		t.Armies = row.Armies
		gs.Territories[row.Key] = t
	}
	return gs
}

// territoriesToModel flattens the territory arena into persistable rows.
func territoriesToModel(gameID string, gs *conquest.GameState) []model.Territory {
	var rows []model.Territory
	for _, k := range gs.TerritoryKeys() {
		t := gs.Territories[k]
		rows = append(rows, model.Territory{
			GameID:       gameID,
			Key:          t.Key,
			Name:         t.Name,
			ContinentKey: t.ContinentKey,
			OwnerID:      t.OwnerID,
			Armies:       t.Armies,
			NeighborKeys: t.Neighbors,
		})
	}
	return rows
}

// store bundles the repositories and cache behind the aggregate read/write
// cycle every game operation performs: read fully, mutate, write fully.
type store struct {
	gameRepo repository.GameRepository
	playRepo repository.PlayerRepository
	terrRepo repository.TerritoryRepository
	cache    repository.GameCache
	topology TopologyFunc
}

// loadState reads the full aggregate for a game.
func (st *store) loadState(ctx context.Context, gameID string) (*model.Game, *conquest.GameState, error) {
	game, err := st.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil {
		return nil, nil, ErrGameNotFound
	}
	topo, err := st.topology(game.MapName)
	if err != nil {
		return nil, nil, fmt.Errorf("topology for game %s: %w", gameID, err)
	}
	territories, err := st.terrRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return game, stateFromModel(game, territories, topo), nil
}

// saveState writes the full aggregate back: game bookkeeping, territory
// ownership and armies, newly eliminated players, and the live state cache.
func (st *store) saveState(ctx context.Context, game *model.Game, gs *conquest.GameState) error {
	game.Status = string(gs.Status)
	game.Phase = string(gs.Phase)
	game.CurrentPlayerIndex = gs.CurrentPlayerIndex
	game.TurnNumber = gs.TurnNumber
	game.ReinforcementsRemaining = gs.ReinforcementsRemaining
	game.WinnerID = gs.WinnerID

	if err := st.gameRepo.SaveState(ctx, game); err != nil {
		return err
	}
	if err := st.terrRepo.SaveAll(ctx, game.ID, territoriesToModel(game.ID, gs)); err != nil {
		return err
	}

	for i := range game.Players {
		row := &game.Players[i]
		if p := gs.Player(row.ID); p != nil && p.Eliminated && !row.Eliminated {
			if err := st.playRepo.SetEliminated(ctx, row.ID); err != nil {
				return err
			}
			row.Eliminated = true
		}
	}

	if gs.Status == conquest.StatusFinished {
		if err := st.gameRepo.SetFinished(ctx, game.ID, gs.WinnerID); err != nil {
			return err
		}
		if err := st.cache.DeleteGameData(ctx, game.ID); err != nil {
			log.Warn().Err(err).Str("gameId", game.ID).Msg("Failed to drop cached state for finished game")
		}
		return nil
	}

	stateJSON, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	if err := st.cache.SetGameState(ctx, game.ID, stateJSON); err != nil {
		log.Warn().Err(err).Str("gameId", game.ID).Msg("Failed to cache game state")
	}
	return nil
}
