package conquest

// Start transitions a waiting game into play: territories must already be
// distributed. The first player's reinforcement pool is computed immediately.
func (gs *GameState) Start() error {
	if gs.Status != StatusWaiting {
		return ErrGameNotInProgress
	}
	if len(gs.Players) == 0 {
		return ErrNoActivePlayers
	}
	gs.Status = StatusInProgress
	gs.Phase = PhaseReinforcement
	gs.CurrentPlayerIndex = 0
	gs.TurnNumber = 1
	gs.ReinforcementsRemaining = gs.CalculateReinforcements(gs.Players[0].ID)
	return nil
}

// AdvanceToNextPlayerIndex rotates the current player index by one position.
// It never touches the turn number.
func (gs *GameState) AdvanceToNextPlayerIndex() {
	gs.CurrentPlayerIndex = (gs.CurrentPlayerIndex + 1) % len(gs.Players)
}

// EndAttack moves the current player from the attack phase to fortify.
func (gs *GameState) EndAttack(playerID string) error {
	if gs.Status != StatusInProgress {
		return ErrGameNotInProgress
	}
	if gs.Phase != PhaseAttack {
		return ErrWrongPhase
	}
	if cp := gs.CurrentPlayer(); cp == nil || cp.ID != playerID {
		return ErrNotYourTurn
	}
	gs.Phase = PhaseFortify
	return nil
}

// EndTurn rotates to the next non-eliminated player. A full rotation past the
// starting index increments the turn number by exactly one, no matter how many
// eliminated players were skipped. Returns ErrNoActivePlayers if every player
// is eliminated. After rotation the turn-limit condition is checked; if the
// game survives it, the new player enters reinforcement with a fresh pool.
func (gs *GameState) EndTurn() error {
	if gs.Status != StatusInProgress {
		return ErrGameNotInProgress
	}

	start := gs.CurrentPlayerIndex
	wrapped := false
	for attempts := 0; ; attempts++ {
		if attempts >= len(gs.Players) {
			return ErrNoActivePlayers
		}
		gs.AdvanceToNextPlayerIndex()
		if gs.CurrentPlayerIndex <= start {
			wrapped = true
		}
		if !gs.Players[gs.CurrentPlayerIndex].Eliminated {
			break
		}
	}

	if wrapped {
		gs.TurnNumber++
	}

	if gs.checkTurnLimit() {
		return nil
	}

	gs.Phase = PhaseReinforcement
	gs.ReinforcementsRemaining = gs.CalculateReinforcements(gs.CurrentPlayer().ID)
	return nil
}
