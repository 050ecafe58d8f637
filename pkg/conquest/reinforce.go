package conquest

// CalculateReinforcements returns the army grant for a player's turn:
// max(3, ownedTerritories/3) plus the bonus of every continent the player
// fully controls. An unknown player yields 0. Side-effect free.
func (gs *GameState) CalculateReinforcements(playerID string) int {
	if gs.Player(playerID) == nil {
		return 0
	}
	armies := gs.OwnedCount(playerID) / 3
	if armies < 3 {
		armies = 3
	}
	for key, c := range gs.Continents {
		if gs.ControlsContinent(playerID, key) {
			armies += c.Bonus
		}
	}
	return armies
}

// PlaceArmies puts reinforcement armies on an owned territory during the
// reinforcement phase. When the pool reaches zero the game moves to attack.
func (gs *GameState) PlaceArmies(playerID, territoryKey string, amount int) error {
	if gs.Status != StatusInProgress {
		return ErrGameNotInProgress
	}
	if gs.Phase != PhaseReinforcement {
		return ErrWrongPhase
	}
	if cp := gs.CurrentPlayer(); cp == nil || cp.ID != playerID {
		return ErrNotYourTurn
	}
	if amount < 1 {
		return ErrTooFewArmies
	}
	if amount > gs.ReinforcementsRemaining {
		return ErrTooManyArmies
	}
	t, ok := gs.Territories[territoryKey]
	if !ok {
		return ErrUnknownTerritory
	}
	if t.OwnerID != playerID {
		return ErrNotOwned
	}

	t.Armies += amount
	gs.Territories[territoryKey] = t
	gs.ReinforcementsRemaining -= amount
	if gs.ReinforcementsRemaining == 0 {
		gs.Phase = PhaseAttack
	}
	return nil
}
