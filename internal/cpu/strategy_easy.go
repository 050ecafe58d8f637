package cpu

import (
	"github.com/tmckee/warfront/pkg/conquest"
)

// HeuristicStrategy is the easy tier: mostly random decisions with a strong
// tendency to stop attacking early.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "easy" }

// DecideReinforcement dumps the whole pool on one random owned territory.
func (HeuristicStrategy) DecideReinforcement(gs *conquest.GameState, playerID string, available int) *Placement {
	if available <= 0 {
		return nil
	}
	owned := gs.TerritoriesOf(playerID)
	if len(owned) == 0 {
		return nil
	}
	return &Placement{
		TerritoryKey: owned[cpuIntn(len(owned))],
		Armies:       available,
	}
}

// DecideAttack stops half the time; otherwise attacks from the first capable
// territory into its first enemy neighbor.
func (HeuristicStrategy) DecideAttack(gs *conquest.GameState, playerID string) *AttackMove {
	if cpuFloat64() < 0.5 {
		return nil
	}
	capable := gs.AttackCapable(playerID)
	if len(capable) == 0 {
		return nil
	}
	from := capable[0]
	enemies := gs.EnemyNeighbors(from)
	if len(enemies) == 0 {
		return nil
	}
	return &AttackMove{
		From:   from,
		To:     enemies[0],
		Armies: maxAttackArmies(gs.Territories[from].Armies),
	}
}

// DecideFortify acts one time in three: a random transfer from a random owned
// territory with a surplus to a random owned neighbor.
func (HeuristicStrategy) DecideFortify(gs *conquest.GameState, playerID string) *FortifyMove {
	if cpuIntn(3) != 0 {
		return nil
	}

	var candidates []string
	for _, k := range gs.TerritoriesOf(playerID) {
		if gs.Territories[k].Armies <= 1 {
			continue
		}
		if len(ownedNeighbors(gs, k, playerID)) > 0 {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	from := candidates[cpuIntn(len(candidates))]
	neighbors := ownedNeighbors(gs, from, playerID)
	to := neighbors[cpuIntn(len(neighbors))]
	return &FortifyMove{
		From:   from,
		To:     to,
		Armies: 1 + cpuIntn(gs.Territories[from].Armies-1),
	}
}

// ownedNeighbors returns the neighbors of a territory owned by the same player,
// in the territory's adjacency order.
func ownedNeighbors(gs *conquest.GameState, key, playerID string) []string {
	var owned []string
	for _, nk := range gs.Territories[key].Neighbors {
		if gs.Territories[nk].OwnerID == playerID {
			owned = append(owned, nk)
		}
	}
	return owned
}
