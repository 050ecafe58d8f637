package conquest

import "sort"

// AttackResult records the outcome of a single attack resolution.
type AttackResult struct {
	From             string `json:"from"`
	To               string `json:"to"`
	AttackDice       []int  `json:"attack_dice"`
	DefendDice       []int  `json:"defend_dice"`
	AttackerLosses   int    `json:"attacker_losses"`
	DefenderLosses   int    `json:"defender_losses"`
	Conquered        bool   `json:"conquered"`
	EliminatedPlayer string `json:"eliminated_player,omitempty"`
}

// Attack resolves one dice battle between an owned territory and an adjacent
// enemy territory. attackingArmies must be 1..3 and leave at least one army
// behind. Combat losses are the only armies removed from the system; conquest
// relocates armies, never creates or destroys them. All checks run before any
// mutation, so a rejected attack leaves the state untouched.
func (gs *GameState) Attack(playerID, fromKey, toKey string, attackingArmies int) (*AttackResult, error) {
	if gs.Status != StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	if gs.Phase != PhaseAttack {
		return nil, ErrWrongPhase
	}
	if cp := gs.CurrentPlayer(); cp == nil || cp.ID != playerID {
		return nil, ErrNotYourTurn
	}
	from, ok := gs.Territories[fromKey]
	if !ok {
		return nil, ErrUnknownTerritory
	}
	to, ok := gs.Territories[toKey]
	if !ok {
		return nil, ErrUnknownTerritory
	}
	if from.OwnerID != playerID {
		return nil, ErrNotOwned
	}
	if to.OwnerID == playerID {
		return nil, ErrOwnTerritory
	}
	if !gs.Adjacent(fromKey, toKey) {
		return nil, ErrNotAdjacent
	}
	if attackingArmies < 1 || attackingArmies > 3 {
		return nil, ErrInvalidAttackCount
	}
	if attackingArmies >= from.Armies {
		return nil, ErrTooManyArmies
	}

	defendingArmies := to.Armies
	if defendingArmies > 2 {
		defendingArmies = 2
	}

	attackDice := rollDice(attackingArmies)
	defendDice := rollDice(defendingArmies)

	result := &AttackResult{
		From:       fromKey,
		To:         toKey,
		AttackDice: attackDice,
		DefendDice: defendDice,
	}

	pairs := len(attackDice)
	if len(defendDice) < pairs {
		pairs = len(defendDice)
	}
	for i := 0; i < pairs; i++ {
		if attackDice[i] > defendDice[i] {
			result.DefenderLosses++
		} else {
			result.AttackerLosses++
		}
	}

	// Work on local copies so a conquest invariant violation aborts
	// without partial mutation.
	fromArmies := from.Armies - result.AttackerLosses
	toArmies := to.Armies - result.DefenderLosses

	if toArmies <= 0 {
		// Conquest. Unreachable given the entry preconditions, but the
		// invariant that at least one army stays behind must hold even
		// after combat losses changed from.Armies.
		moveArmies := attackingArmies
		if fromArmies-1 < moveArmies {
			moveArmies = fromArmies - 1
		}
		if moveArmies < 1 {
			return nil, ErrConquestInvariant
		}
		result.Conquered = true
		previousOwner := to.OwnerID

		to.OwnerID = from.OwnerID
		to.Armies = moveArmies
		from.Armies = fromArmies - moveArmies
		gs.Territories[fromKey] = from
		gs.Territories[toKey] = to

		if gs.OwnedCount(previousOwner) == 0 {
			if p := gs.Player(previousOwner); p != nil {
				p.Eliminated = true
				result.EliminatedPlayer = p.Name
			}
		}
	} else {
		from.Armies = fromArmies
		to.Armies = toArmies
		gs.Territories[fromKey] = from
		gs.Territories[toKey] = to
	}

	gs.checkVictory()
	return result, nil
}

// rollDice returns n dice sorted descending.
func rollDice(n int) []int {
	dice := make([]int, n)
	for i := range dice {
		dice[i] = rollDie()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(dice)))
	return dice
}
