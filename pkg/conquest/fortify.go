package conquest

// Fortify moves armies between two owned, adjacent territories during the
// fortify phase, leaving at least one army behind, then ends the turn.
func (gs *GameState) Fortify(playerID, fromKey, toKey string, amount int) error {
	if gs.Status != StatusInProgress {
		return ErrGameNotInProgress
	}
	if gs.Phase != PhaseFortify {
		return ErrWrongPhase
	}
	if cp := gs.CurrentPlayer(); cp == nil || cp.ID != playerID {
		return ErrNotYourTurn
	}
	from, ok := gs.Territories[fromKey]
	if !ok {
		return ErrUnknownTerritory
	}
	to, ok := gs.Territories[toKey]
	if !ok {
		return ErrUnknownTerritory
	}
	if from.OwnerID != playerID || to.OwnerID != playerID {
		return ErrNotOwned
	}
	if !gs.Adjacent(fromKey, toKey) {
		return ErrNotAdjacent
	}
	if amount < 1 {
		return ErrTooFewArmies
	}
	if amount >= from.Armies {
		return ErrTooManyArmies
	}

	from.Armies -= amount
	to.Armies += amount
	gs.Territories[fromKey] = from
	gs.Territories[toKey] = to

	return gs.EndTurn()
}

// SkipFortify ends the turn without moving any armies.
func (gs *GameState) SkipFortify(playerID string) error {
	if gs.Status != StatusInProgress {
		return ErrGameNotInProgress
	}
	if gs.Phase != PhaseFortify {
		return ErrWrongPhase
	}
	if cp := gs.CurrentPlayer(); cp == nil || cp.ID != playerID {
		return ErrNotYourTurn
	}
	return gs.EndTurn()
}
