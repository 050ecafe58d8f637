package cpu

import (
	"sort"

	"github.com/tmckee/warfront/pkg/conquest"
)

// ContinentalStrategy is the hard tier (expert plays the same): it works
// toward continent bonuses, reinforcing the continent closest to completion,
// prioritizing attacks that finish a continent, and feeding the weakest part
// of the front line.
type ContinentalStrategy struct{}

func (ContinentalStrategy) Name() string { return "hard" }

// DecideReinforcement reinforces the weakest owned border territory of the
// continent with the fewest missing territories, falling back to the globally
// weakest border territory, then to the first owned territory.
func (ContinentalStrategy) DecideReinforcement(gs *conquest.GameState, playerID string, available int) *Placement {
	if available <= 0 {
		return nil
	}
	owned := gs.TerritoriesOf(playerID)
	if len(owned) == 0 {
		return nil
	}

	if ck := closestContinent(gs, playerID); ck != "" {
		if target := weakestBorder(gs, playerID, gs.Continents[ck].Territories); target != "" {
			return &Placement{TerritoryKey: target, Armies: available}
		}
	}
	if target := weakestBorder(gs, playerID, owned); target != "" {
		return &Placement{TerritoryKey: target, Armies: available}
	}
	return &Placement{TerritoryKey: owned[0], Armies: available}
}

// DecideAttack first looks for an attack that completes a continent, then for
// the best army-ratio attack above 2:1.
func (ContinentalStrategy) DecideAttack(gs *conquest.GameState, playerID string) *AttackMove {
	capable := gs.AttackCapable(playerID)
	if len(capable) == 0 {
		return nil
	}

	// Completing a continent beats any ratio.
	for _, ck := range continentKeys(gs) {
		missing := missingTerritories(gs, playerID, ck)
		if len(missing) != 1 {
			continue
		}
		target := missing[0]
		for _, from := range capable {
			if !gs.Adjacent(from, target) {
				continue
			}
			if gs.Territories[from].Armies > gs.Territories[target].Armies {
				return &AttackMove{
					From:   from,
					To:     target,
					Armies: maxAttackArmies(gs.Territories[from].Armies),
				}
			}
		}
	}

	bestFrom, bestTo := "", ""
	bestRatio := 2.0
	for _, from := range capable {
		attackerArmies := gs.Territories[from].Armies
		for _, to := range gs.EnemyNeighbors(from) {
			ratio := float64(attackerArmies) / float64(gs.Territories[to].Armies)
			if ratio > bestRatio {
				bestRatio = ratio
				bestFrom, bestTo = from, to
			}
		}
	}
	if bestFrom == "" {
		return nil
	}
	return &AttackMove{
		From:   bestFrom,
		To:     bestTo,
		Armies: maxAttackArmies(gs.Territories[bestFrom].Armies),
	}
}

// DecideFortify moves the surplus of the strongest interior territory to the
// weakest directly-connected border territory.
func (ContinentalStrategy) DecideFortify(gs *conquest.GameState, playerID string) *FortifyMove {
	from := ""
	best := 1
	for _, k := range gs.TerritoriesOf(playerID) {
		t := gs.Territories[k]
		if gs.IsBorder(k) || t.Armies <= best {
			continue
		}
		if weakestConnectedBorder(gs, k, playerID) != "" {
			best = t.Armies
			from = k
		}
	}
	if from == "" {
		return nil
	}
	return &FortifyMove{
		From:   from,
		To:     weakestConnectedBorder(gs, from, playerID),
		Armies: gs.Territories[from].Armies - 1,
	}
}

// closestContinent returns the continent where the player is missing the
// fewest territories, excluding continents already complete. Ties go to the
// lexicographically first continent key.
func closestContinent(gs *conquest.GameState, playerID string) string {
	bestKey := ""
	bestMissing := 0
	for _, ck := range continentKeys(gs) {
		missing := len(missingTerritories(gs, playerID, ck))
		if missing == 0 {
			continue
		}
		if bestKey == "" || missing < bestMissing {
			bestKey = ck
			bestMissing = missing
		}
	}
	return bestKey
}

// missingTerritories returns the continent member keys not owned by the player.
func missingTerritories(gs *conquest.GameState, playerID, continentKey string) []string {
	var missing []string
	for _, tk := range gs.Continents[continentKey].Territories {
		if gs.Territories[tk].OwnerID != playerID {
			missing = append(missing, tk)
		}
	}
	return missing
}

// weakestBorder returns the owned border territory with the fewest armies
// among the given keys, or "" if none qualify.
func weakestBorder(gs *conquest.GameState, playerID string, keys []string) string {
	target := ""
	for _, k := range keys {
		t := gs.Territories[k]
		if t.OwnerID != playerID || !gs.IsBorder(k) {
			continue
		}
		if target == "" || t.Armies < gs.Territories[target].Armies {
			target = k
		}
	}
	return target
}

// weakestConnectedBorder returns the owned neighbor bordering an enemy with
// the fewest armies, or "" if there is none.
func weakestConnectedBorder(gs *conquest.GameState, key, playerID string) string {
	target := ""
	for _, nk := range ownedNeighbors(gs, key, playerID) {
		if !gs.IsBorder(nk) {
			continue
		}
		if target == "" || gs.Territories[nk].Armies < gs.Territories[target].Armies {
			target = nk
		}
	}
	return target
}

// continentKeys returns all continent keys sorted, for deterministic scans.
func continentKeys(gs *conquest.GameState) []string {
	keys := make([]string, 0, len(gs.Continents))
	for k := range gs.Continents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
