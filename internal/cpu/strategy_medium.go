package cpu

import (
	"github.com/tmckee/warfront/pkg/conquest"
)

// TacticalStrategy is the medium tier: reinforce the most contested border,
// attack only with a clear numerical advantage, and consolidate interior
// armies toward the front.
type TacticalStrategy struct{}

func (TacticalStrategy) Name() string { return "medium" }

// DecideReinforcement targets the owned territory with the most enemy
// neighbors, falling back to the first owned territory.
func (TacticalStrategy) DecideReinforcement(gs *conquest.GameState, playerID string, available int) *Placement {
	if available <= 0 {
		return nil
	}
	owned := gs.TerritoriesOf(playerID)
	if len(owned) == 0 {
		return nil
	}

	target := ""
	best := 0
	for _, k := range owned {
		if n := len(gs.EnemyNeighbors(k)); n > best {
			best = n
			target = k
		}
	}
	if target == "" {
		target = owned[0]
	}
	return &Placement{TerritoryKey: target, Armies: available}
}

// DecideAttack scans every capable territory against every enemy neighbor and
// picks the pair with the largest army advantage. Attacks only when the
// advantage is at least two armies.
func (TacticalStrategy) DecideAttack(gs *conquest.GameState, playerID string) *AttackMove {
	bestFrom, bestTo := "", ""
	bestAdvantage := 0
	for _, from := range gs.AttackCapable(playerID) {
		attackerArmies := gs.Territories[from].Armies
		for _, to := range gs.EnemyNeighbors(from) {
			advantage := attackerArmies - gs.Territories[to].Armies
			if advantage > bestAdvantage {
				bestAdvantage = advantage
				bestFrom, bestTo = from, to
			}
		}
	}
	if bestAdvantage < 2 {
		return nil
	}
	return &AttackMove{
		From:   bestFrom,
		To:     bestTo,
		Armies: maxAttackArmies(gs.Territories[bestFrom].Armies),
	}
}

// DecideFortify moves the surplus of the strongest interior territory to a
// directly-connected border territory, leaving one army behind.
func (TacticalStrategy) DecideFortify(gs *conquest.GameState, playerID string) *FortifyMove {
	from := ""
	best := 1
	for _, k := range gs.TerritoriesOf(playerID) {
		t := gs.Territories[k]
		if gs.IsBorder(k) || t.Armies <= best {
			continue
		}
		if connectedBorder(gs, k, playerID) != "" {
			best = t.Armies
			from = k
		}
	}
	if from == "" {
		return nil
	}
	return &FortifyMove{
		From:   from,
		To:     connectedBorder(gs, from, playerID),
		Armies: gs.Territories[from].Armies - 1,
	}
}

// connectedBorder returns the first owned neighbor of a territory that borders
// an enemy, or "" if there is none.
func connectedBorder(gs *conquest.GameState, key, playerID string) string {
	for _, nk := range ownedNeighbors(gs, key, playerID) {
		if gs.IsBorder(nk) {
			return nk
		}
	}
	return ""
}
